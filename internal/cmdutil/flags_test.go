package cmdutil

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventblocks/cli/internal/assets"
)

func TestRenderFlags_AddTo(t *testing.T) {
	var rf RenderFlags
	cmd := &cobra.Command{Use: "test"}
	rf.AddTo(cmd)

	pageFlag := cmd.Flags().Lookup("page")
	require.NotNil(t, pageFlag)
	assert.Equal(t, "", pageFlag.DefValue)

	blockFlag := cmd.Flags().Lookup("block")
	require.NotNil(t, blockFlag)
	assert.Equal(t, "stringSlice", blockFlag.Value.Type())

	lateFlag := cmd.Flags().Lookup("late-block")
	require.NotNil(t, lateFlag)
	assert.Equal(t, "stringSlice", lateFlag.Value.Type())
}

func TestRenderFlags_AddSecondTo(t *testing.T) {
	var a, b RenderFlags
	cmd := &cobra.Command{Use: "test"}
	a.AddTo(cmd)
	b.AddSecondTo(cmd)

	for _, name := range []string{"page-b", "block-b", "late-block-b"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRenderFlags_Inherit(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want RenderFlags
	}{
		{
			name: "nothing set inherits everything",
			args: []string{"--page", "single:event", "--block", "event,map"},
			want: RenderFlags{Page: "single:event", Blocks: []string{"event", "map"}},
		},
		{
			name: "page overridden",
			args: []string{"--page", "single:event", "--block", "event", "--page-b", "archive:event"},
			want: RenderFlags{Page: "archive:event", Blocks: []string{"event"}},
		},
		{
			name: "blocks overridden",
			args: []string{"--block", "event", "--block-b", "calendar", "--late-block", "search"},
			want: RenderFlags{Blocks: []string{"calendar"}, LateBlocks: []string{"search"}},
		},
		{
			name: "late blocks overridden",
			args: []string{"--late-block", "search", "--late-block-b", "booking-form"},
			want: RenderFlags{LateBlocks: []string{"booking-form"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a, b RenderFlags
			cmd := &cobra.Command{Use: "test"}
			a.AddTo(cmd)
			b.AddSecondTo(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			b.Inherit(cmd, a)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestRenderFlags_PageContext(t *testing.T) {
	tests := []struct {
		page string
		want string
	}{
		{"single:event", "single:event"},
		{"archive:location", "archive:location"},
		{"", "other"},
		{"home", "other:home"},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			rf := RenderFlags{Page: tt.page}
			assert.Equal(t, tt.want, rf.PageContext().Key())
		})
	}
}

func TestResolveNames(t *testing.T) {
	reg, err := assets.DefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{"calendar"}, ResolveNames([]string{"calendar"}, reg))
	assert.Equal(t, reg.Names(), ResolveNames(nil, reg))
}
