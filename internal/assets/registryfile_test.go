package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/eventblocks/cli/internal/errors"
)

const validRegistryYAML = `
modules:
  - name: base
    resource: css/base.css
    auto: true
  - name: comp
    resource: css/comp.css
    dependencies: [base]
  - name: events
    resource: css/events.css
    dependencies: [comp]
legacy:
  name: bundle
  resource: css/bundle.min.css
layouts:
  default: css/layouts/default.css
contexts:
  "archive:event": [events]
`

func TestParseRegistry(t *testing.T) {
	reg, err := ParseRegistry([]byte(validRegistryYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "comp", "events"}, reg.Names())
	assert.Equal(t, Module{Name: "bundle", Resource: "css/bundle.min.css"}, reg.Legacy())
	assert.Equal(t, []string{"default"}, reg.Themes())
	assert.Equal(t, map[string][]string{"archive:event": {"events"}}, reg.Contexts())

	auto := reg.AutoModules()
	require.Len(t, auto, 1)
	assert.Equal(t, "base", auto[0].Name)
}

func TestParseRegistry_DefaultsLegacy(t *testing.T) {
	reg, err := ParseRegistry([]byte("modules:\n  - name: base\n    resource: css/base.css\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLegacyModule(), reg.Legacy())
	assert.Empty(t, reg.Contexts())
}

func TestParseRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"invalid yaml", "modules: [", "not valid YAML"},
		{"empty document", "", "registry is empty"},
		{"missing resource", "modules:\n  - name: base\n", "resource"},
		{"bad module name", "modules:\n  - name: Base Layer\n    resource: a.css\n", "name"},
		{"no modules", "modules: []\n", "modules"},
		{"unknown field", "modules:\n  - name: a\n    resource: a.css\n    weight: 3\n", "weight"},
		{"bad context key", "modules:\n  - name: a\n    resource: a.css\ncontexts:\n  home: [a]\n", "home"},
		{"cycle passes schema but fails validation", "modules:\n  - name: a\n    resource: a.css\n    dependencies: [a]\n", "dependency cycle: a -> a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.ErrorIs(t, err, oerrors.ErrValidation)
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	reg, err := ParseRegistry([]byte(validRegistryYAML))
	require.NoError(t, err)

	doc := reg.Document()
	rebuilt, err := NewRegistry(doc.Modules,
		WithLegacy(*doc.Legacy),
		WithLayouts(doc.Layouts),
		WithContexts(doc.Contexts),
	)
	require.NoError(t, err)
	assert.Equal(t, reg.AllModules(), rebuilt.AllModules())
	assert.Equal(t, reg.Contexts(), rebuilt.Contexts())
}

func TestLoadRegistryFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "registry.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validRegistryYAML), 0o644))

		reg, err := LoadRegistryFile(path)
		require.NoError(t, err)
		assert.Len(t, reg.Names(), 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRegistryFile(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})

	t.Run("invalid file carries its location", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("modules:\n  - name: a\n"), 0o644))

		_, err := LoadRegistryFile(path)
		require.Error(t, err)

		var detail *oerrors.DetailError
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, path, detail.Location)
		assert.ErrorIs(t, err, oerrors.ErrValidation)
	})

	t.Run("registry errors are wrapped with location", func(t *testing.T) {
		path := filepath.Join(dir, "cycle.yaml")
		require.NoError(t, os.WriteFile(path, []byte("modules:\n  - name: a\n    resource: a.css\n    dependencies: [a]\n"), 0o644))

		_, err := LoadRegistryFile(path)
		require.Error(t, err)

		var detail *oerrors.DetailError
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, path, detail.Location)
		assert.ErrorIs(t, err, oerrors.ErrValidation)
		assert.Contains(t, err.Error(), "dependency cycle")
	})
}
