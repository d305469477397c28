package modules

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventblocks/cli/internal/assets"
	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/config"
	"github.com/eventblocks/cli/internal/testutil"
)

const customRegistry = `modules:
  - name: base
    resource: css/base.css
    auto: true
  - name: grid
    resource: css/grid.css
    dependencies: [base]
  - name: gallery
    resource: css/gallery.css
    dependencies: [grid]
layouts:
  default: css/layout.css
`

func testConfig(registry string) *cmdtypes.GlobalConfig {
	cfg := config.DefaultConfig()
	cfg.Registry = registry
	return &cmdtypes.GlobalConfig{Config: cfg}
}

func execute(t *testing.T, cfg *cmdtypes.GlobalConfig, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewModulesCmd(cfg)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewModulesCmd(t *testing.T) {
	cmd := NewModulesCmd(testConfig(""))
	assert.Equal(t, "modules", cmd.Use)
	assert.Contains(t, cmd.Aliases, "mod")

	for _, name := range []string{"list", "vet", "resolve"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestList_Table(t *testing.T) {
	out, _, err := execute(t, testConfig(""), "list")
	require.NoError(t, err)

	assert.Contains(t, out, "MODULE")
	assert.Contains(t, out, "events-list")
	assert.Contains(t, out, "css/events-manager.min.css")
}

func TestList_YAMLIsARegistryFile(t *testing.T) {
	out, _, err := execute(t, testConfig(""), "list", "-o", "yaml")
	require.NoError(t, err)

	reg, err := assets.ParseRegistry([]byte(out))
	require.NoError(t, err)

	def, err := assets.DefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, def.Names(), reg.Names())
	assert.Equal(t, def.Themes(), reg.Themes())
	assert.Equal(t, def.Contexts(), reg.Contexts())
}

func TestList_CustomRegistry(t *testing.T) {
	out, _, err := execute(t, testConfig(testutil.WriteRegistry(t, customRegistry)), "list", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"gallery"`)
	assert.NotContains(t, out, "events-list")
}

func TestList_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, testConfig(""), "list", "-o", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestVet(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{
			name:    "valid registry",
			content: customRegistry,
			wantOut: "is valid: 3 modules, 1 auto, 1 layouts",
		},
		{
			name: "dependency cycle",
			content: `modules:
  - name: a
    resource: a.css
    dependencies: [b]
  - name: b
    resource: b.css
    dependencies: [a]
`,
			wantCode: cmdtypes.ExitValidationError,
			wantErr:  "dependency cycle",
		},
		{
			name: "schema violation",
			content: `modules:
  - name: a
`,
			wantCode: cmdtypes.ExitValidationError,
			wantErr:  "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteRegistry(t, tt.content)
			out, errOut, err := execute(t, testConfig(""), "vet", path)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Contains(t, out, tt.wantOut)
				return
			}

			require.Error(t, err)
			var exitErr *cmdtypes.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.wantCode, exitErr.Code)
			assert.True(t, exitErr.Printed)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestVet_BuiltIn(t *testing.T) {
	out, _, err := execute(t, testConfig(""), "vet")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in registry is valid")
}

func TestVet_UsesConfiguredRegistry(t *testing.T) {
	path := testutil.WriteRegistry(t, customRegistry)
	out, _, err := execute(t, testConfig(path), "vet")
	require.NoError(t, err)
	assert.Contains(t, out, path+" is valid")
}

func TestVet_MissingFile(t *testing.T) {
	_, _, err := execute(t, testConfig(""), "vet", filepath.Join(t.TempDir(), "missing.yaml"))

	var exitErr *cmdtypes.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cmdtypes.ExitNotFound, exitErr.Code)
}

func TestResolve_LoadOrder(t *testing.T) {
	out, _, err := execute(t, testConfig(""), "resolve", "event-single", "booking-form")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)

	order := []string{"css/base.css", "css/components.css", "css/map.css", "css/event-single.css", "css/booking-form.css"}
	for i, resource := range order {
		assert.Contains(t, lines[i], resource)
	}
}

func TestResolve_AllModules(t *testing.T) {
	out, _, err := execute(t, testConfig(testutil.WriteRegistry(t, customRegistry)), "resolve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "css/gallery.css")
}

func TestResolve_Tree(t *testing.T) {
	out, _, err := execute(t, testConfig(testutil.WriteRegistry(t, customRegistry)), "resolve", "gallery", "--tree")
	require.NoError(t, err)

	assert.Contains(t, out, "gallery")
	assert.Contains(t, out, "└── ")
	assert.Contains(t, out, "css/base.css")
}

func TestResolve_UnknownModule(t *testing.T) {
	_, _, err := execute(t, testConfig(""), "resolve", "event-single", "carousel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carousel")

	var exitErr *cmdtypes.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cmdtypes.ExitNotFound, exitErr.Code)
}
