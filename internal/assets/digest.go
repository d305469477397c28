package assets

import (
	"crypto/sha256"
	"fmt"
)

// Digest returns a SHA256 digest of the emitted stylesheets as
// "sha256:<hex>". Emission order is significant: the same stylesheets in a
// different order cascade differently and digest differently. The render ID
// is not part of the digest, so equal pages rendered twice digest the same.
func (m *Manifest) Digest() string {
	h := sha256.New()
	if m.Legacy {
		h.Write([]byte("legacy\n"))
	}
	for _, e := range m.Emissions {
		fmt.Fprintf(h, "%s\x00%s\n", e.Name, e.Resource)
	}
	return fmt.Sprintf("sha256:%x", h.Sum(nil))
}

// ETag returns the digest as a quoted HTTP entity tag.
func (m *Manifest) ETag() string {
	return `"` + m.Digest() + `"`
}
