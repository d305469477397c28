package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/eventblocks/cli/internal/assets"
)

// LateMarker separates head links from late links. html/template drops
// comments in template text, so it is passed in as data.
const LateMarker template.HTML = "<!-- late stylesheets -->"

var linkTemplate = template.Must(template.New("links").Parse(
	`{{range .Head}}<link rel="stylesheet" id="{{.ID}}" href="{{.Href}}" media="all">
{{end}}{{if .Late}}{{.Marker}}
{{range .Late}}<link rel="stylesheet" id="{{.ID}}" href="{{.Href}}" media="all">
{{end}}{{end}}`))

// HeadRenderer turns a manifest into stylesheet link elements.
type HeadRenderer struct {
	// BaseURL prefixes relative resource locators.
	BaseURL string
	// Version is appended as ?ver=<version>. Empty omits it.
	Version string
}

type link struct {
	ID   string
	Href string
}

// Render writes one link element per emission, in emission order. Late
// emissions are written after a marker comment, where a page renderer
// would print them in the body.
func (h HeadRenderer) Render(w io.Writer, m *assets.Manifest) error {
	data := struct {
		Head   []link
		Late   []link
		Marker template.HTML
	}{Marker: LateMarker}
	for _, e := range m.Emissions {
		l := link{ID: LinkID(e.Name), Href: h.URL(e.Resource)}
		if e.Late {
			data.Late = append(data.Late, l)
		} else {
			data.Head = append(data.Head, l)
		}
	}
	if err := linkTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering stylesheet links: %w", err)
	}
	return nil
}

// RenderString renders the links to a string.
func (h HeadRenderer) RenderString(m *assets.Manifest) (string, error) {
	var buf bytes.Buffer
	if err := h.Render(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// URL resolves a resource locator against BaseURL and appends the version.
// Absolute URLs and root-relative paths are not prefixed.
func (h HeadRenderer) URL(resource string) string {
	href := resource
	if !isAbsolute(resource) && h.BaseURL != "" {
		href = strings.TrimRight(h.BaseURL, "/") + "/" + strings.TrimLeft(resource, "/")
	}
	if h.Version == "" {
		return href
	}
	sep := "?"
	if strings.Contains(href, "?") {
		sep = "&"
	}
	return href + sep + "ver=" + url.QueryEscape(h.Version)
}

func isAbsolute(resource string) bool {
	if strings.HasPrefix(resource, "/") {
		return true
	}
	u, err := url.Parse(resource)
	return err == nil && u.Scheme != ""
}

// LinkID returns the element id for a module, e.g. "evb-layout-astra-css".
func LinkID(name string) string {
	var sb strings.Builder
	sb.WriteString("evb-")
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	sb.WriteString("-css")
	return sb.String()
}
