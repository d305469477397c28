// Package page holds the collaborators around an asset render: the content
// blocks that request modules and the head renderer that turns a manifest
// into stylesheet links.
package page

import (
	"sort"
	"strings"

	"github.com/eventblocks/cli/internal/assets"
)

// Block kinds in the built-in catalog.
const (
	KindEventsList    = "events-list"
	KindEvent         = "event"
	KindCalendar      = "calendar"
	KindArtistsList   = "artists-list"
	KindArtist        = "artist"
	KindLocationsList = "locations-list"
	KindLocation      = "location"
	KindLocationMap   = "location-map"
	KindSearch        = "search"
	KindBookingForm   = "booking-form"
)

// Catalog maps block kinds to the modules each block requests.
type Catalog map[string][]string

// DefaultCatalog returns the built-in block catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		KindEventsList:    {"events-list"},
		KindEvent:         {"event-single"},
		KindCalendar:      {"calendar"},
		KindArtistsList:   {"artists-list"},
		KindArtist:        {"artist-single"},
		KindLocationsList: {"locations-list"},
		KindLocation:      {"location-single"},
		KindLocationMap:   {"map"},
		KindSearch:        {"search"},
		KindBookingForm:   {"booking-form"},
	}
}

// Modules returns the modules a block of kind requests. A kind missing from
// the catalog requests the module of the same name, so custom blocks can
// target custom registry modules directly.
func (c Catalog) Modules(kind string) []string {
	if mods, ok := c[kind]; ok {
		return append([]string(nil), mods...)
	}
	return []string{kind}
}

// Kinds returns the catalog's block kinds, sorted.
func (c Catalog) Kinds() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Block returns a block of the given kind. Blank kinds yield nil, which
// the scheduler skips.
func (c Catalog) Block(kind string) assets.Block {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil
	}
	return &block{kind: kind, modules: c.Modules(kind)}
}

// Blocks builds one block per kind, in order.
func (c Catalog) Blocks(kinds []string) []assets.Block {
	out := make([]assets.Block, 0, len(kinds))
	for _, k := range kinds {
		if b := c.Block(k); b != nil {
			out = append(out, b)
		}
	}
	return out
}

type block struct {
	kind    string
	modules []string
}

func (b *block) Name() string { return b.kind }

func (b *block) Render(rc *assets.RenderContext) {
	rc.Enqueue(b.modules...)
}
