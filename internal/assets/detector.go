package assets

import (
	"fmt"
	"strings"
)

// PageKind distinguishes single-item pages from listings.
type PageKind string

const (
	// PageSingular is a page showing one content item.
	PageSingular PageKind = "single"
	// PageArchive is a listing of items of one type.
	PageArchive PageKind = "archive"
	// PageOther is any page the detector has no convention for.
	PageOther PageKind = "other"
)

// PageContext describes the resolved page being rendered.
type PageContext struct {
	Kind PageKind `yaml:"kind" json:"kind"`
	Type string   `yaml:"type,omitempty" json:"type,omitempty"`
}

// Key returns the table key for the context, e.g. "single:event".
func (p PageContext) Key() string {
	if p.Type == "" {
		return string(p.Kind)
	}
	return string(p.Kind) + ":" + p.Type
}

// String implements fmt.Stringer.
func (p PageContext) String() string {
	return p.Key()
}

// ParsePageContext parses "single:event", "archive:artist" or any other
// string. Anything that is not a singular or archive key is an "other" page
// whose type is the whole input, so parsing never fails.
func ParsePageContext(s string) PageContext {
	if pc, err := ParsePageContextKey(s); err == nil {
		return pc
	}
	s = strings.TrimSpace(s)
	if s == "" || s == string(PageOther) {
		return PageContext{Kind: PageOther}
	}
	return PageContext{Kind: PageOther, Type: strings.TrimPrefix(s, string(PageOther)+":")}
}

// ParsePageContextKey strictly parses a "kind:type" key where kind is
// "single" or "archive".
func ParsePageContextKey(key string) (PageContext, error) {
	kind, typ, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok || typ == "" {
		return PageContext{}, fmt.Errorf("expected \"single:<type>\" or \"archive:<type>\"")
	}
	switch PageKind(kind) {
	case PageSingular, PageArchive:
		return PageContext{Kind: PageKind(kind), Type: typ}, nil
	default:
		return PageContext{}, fmt.Errorf("unknown page kind %q", kind)
	}
}

// DefaultContexts is the conventional page context table for event, artist
// and location pages.
func DefaultContexts() map[string][]string {
	return map[string][]string{
		"single:event":           {"event-single"},
		"archive:event":          {"events-list"},
		"archive:event-category": {"events-list"},
		"archive:event-tag":      {"events-list"},
		"single:artist":          {"artist-single"},
		"archive:artist":         {"artists-list"},
		"single:location":        {"location-single"},
		"archive:location":       {"locations-list"},
	}
}

// Detector enqueues the modules conventionally tied to a page context.
type Detector struct {
	table map[string][]string
}

// NewDetector returns a detector over table. A nil or empty table yields a
// detector that never enqueues anything.
func NewDetector(table map[string][]string) *Detector {
	t := make(map[string][]string, len(table))
	for k, v := range table {
		t[k] = append([]string(nil), v...)
	}
	return &Detector{table: t}
}

// Modules returns the modules associated with pc.
func (d *Detector) Modules(pc PageContext) []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.table[pc.Key()]...)
}

// Detect enqueues the modules for pc on rc. It only ever adds requests;
// blocks rendered later may request the same modules again.
func (d *Detector) Detect(rc *RenderContext, pc PageContext) {
	names := d.Modules(pc)
	if len(names) == 0 {
		rc.log().Debug("no modules for page context", "page", pc.Key())
		return
	}
	rc.log().Debug("page context detected", "page", pc.Key(), "modules", strings.Join(names, ","))
	rc.Enqueue(names...)
}
