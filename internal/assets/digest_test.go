package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestManifest(names ...string) *Manifest {
	m := &Manifest{RenderID: "r1", Page: "single:event"}
	for _, n := range names {
		m.Emissions = append(m.Emissions, Emission{Name: n, Resource: "css/" + n + ".css"})
	}
	return m
}

func TestManifestDigest_Format(t *testing.T) {
	d := digestManifest("base", "components").Digest()
	require.True(t, strings.HasPrefix(d, "sha256:"))
	assert.Len(t, d, len("sha256:")+64)
}

func TestManifestDigest_IgnoresRenderID(t *testing.T) {
	a := digestManifest("base", "components")
	b := digestManifest("base", "components")
	b.RenderID = "r2"
	assert.Equal(t, a.Digest(), b.Digest())
}

func TestManifestDigest_OrderSensitive(t *testing.T) {
	a := digestManifest("base", "components")
	b := digestManifest("components", "base")
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestManifestDigest_Legacy(t *testing.T) {
	a := digestManifest("legacy")
	b := digestManifest("legacy")
	b.Legacy = true
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestManifestDigest_NameResourceBoundary(t *testing.T) {
	a := &Manifest{Emissions: []Emission{{Name: "ab", Resource: "c"}}}
	b := &Manifest{Emissions: []Emission{{Name: "a", Resource: "bc"}}}
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestManifestETag(t *testing.T) {
	m := digestManifest("base")
	assert.Equal(t, `"`+m.Digest()+`"`, m.ETag())
}
