package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventblocks/cli/internal/cmdtypes"
	"github.com/eventblocks/cli/internal/config"
)

func executeDiff(t *testing.T, cfg *cmdtypes.GlobalConfig, args ...string) string {
	t.Helper()
	cmd := NewDiffCmd(cfg)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return stdout.String()
}

func TestNewDiffCmd(t *testing.T) {
	cmd := NewDiffCmd(testConfig(nil))

	assert.Equal(t, "diff", cmd.Use)
	for _, name := range []string{"page", "page-b", "block", "block-b", "late-block", "late-block-b", "theme-b", "legacy-b"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestDiff_NoChanges(t *testing.T) {
	out := executeDiff(t, testConfig(nil), "--page", "single:event", "--block", "calendar")
	assert.Contains(t, out, "No changes detected.")
}

func TestDiff_PageChange(t *testing.T) {
	out := executeDiff(t, testConfig(nil), "--page", "archive:event", "--page-b", "single:event")

	assert.Contains(t, out, "Added:")
	assert.Contains(t, out, "+ event-single")
	assert.Contains(t, out, "+ map")
	assert.Contains(t, out, "Removed:")
	assert.Contains(t, out, "- events-list")
	assert.Contains(t, out, "- pagination")
	assert.Contains(t, out, "Summary:")
}

func TestDiff_ThemeChange(t *testing.T) {
	out := executeDiff(t, testConfig(nil), "--page", "single:event", "--theme-b", "astra")

	assert.Contains(t, out, "+ layout/astra")
	assert.Contains(t, out, "- layout/default")
}

func TestDiff_LegacyInheritedFromConfig(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.Legacy = true })

	out := executeDiff(t, cfg, "--page", "single:event", "--page-b", "archive:event")
	assert.Contains(t, out, "No changes detected.", "both renders use the legacy bundle")
}

func TestDiff_LegacyB(t *testing.T) {
	out := executeDiff(t, testConfig(nil), "--page", "single:location", "--legacy-b")

	assert.Contains(t, out, "+ legacy")
	assert.Contains(t, out, "- location-single")
	assert.Contains(t, out, "- layout/default")
}
