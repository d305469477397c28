package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventblocks/cli/internal/assets"
)

func TestRenderDependencyTree(t *testing.T) {
	reg, err := assets.NewRegistry([]assets.Module{
		{Name: "base", Resource: "css/base.css"},
		{Name: "components", Resource: "css/components.css", Dependencies: []string{"base"}},
		{Name: "events-list", Resource: "css/events-list.css", Dependencies: []string{"components", "base"}},
	})
	require.NoError(t, err)

	out := stripAnsi(RenderDependencyTree(reg, "events-list", "nope"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], "events-list"))
	assert.True(t, strings.HasPrefix(lines[1], "├── components"))
	assert.Contains(t, lines[1], "css/components.css")
	assert.True(t, strings.HasPrefix(lines[2], "│   └── base"))
	assert.True(t, strings.HasPrefix(lines[3], "└── base"))
	assert.Contains(t, lines[3], "(see above)")
	assert.Equal(t, "nope  (unknown)", lines[4])
}
