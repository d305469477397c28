package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderContext_ZeroValue(t *testing.T) {
	var rc RenderContext

	assert.NotPanics(t, func() {
		rc.Enqueue("events", "events", " ")
		rc.UseLegacy()
		rc.load("events")
	})
	assert.Equal(t, []string{"events"}, rc.Queued())
	assert.False(t, rc.IsLoaded("events"))
	assert.Empty(t, rc.LoadedModules())
	assert.False(t, rc.IsEnabled(), "legacy requested before register")

	m := rc.Manifest()
	assert.Equal(t, PhaseInit, m.Phase)
	assert.Empty(t, m.Emissions)
}

func TestOrderedSet_ZeroValue(t *testing.T) {
	var s orderedSet
	assert.True(t, s.add("a"))
	assert.False(t, s.add("a"))
	assert.True(t, s.add("b"))
	assert.Equal(t, []string{"a", "b"}, s.list())

	s.clear()
	assert.Zero(t, s.len())
	assert.False(t, s.has("a"))
}
