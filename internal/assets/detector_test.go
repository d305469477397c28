package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageContext(t *testing.T) {
	tests := []struct {
		input string
		want  PageContext
		key   string
	}{
		{"single:event", PageContext{Kind: PageSingular, Type: "event"}, "single:event"},
		{"archive:location", PageContext{Kind: PageArchive, Type: "location"}, "archive:location"},
		{" archive:event-tag ", PageContext{Kind: PageArchive, Type: "event-tag"}, "archive:event-tag"},
		{"home", PageContext{Kind: PageOther, Type: "home"}, "other:home"},
		{"other:search", PageContext{Kind: PageOther, Type: "search"}, "other:search"},
		{"single:", PageContext{Kind: PageOther, Type: "single:"}, "other:single:"},
		{"", PageContext{Kind: PageOther}, "other"},
		{"other", PageContext{Kind: PageOther}, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pc := ParsePageContext(tt.input)
			assert.Equal(t, tt.want, pc)
			assert.Equal(t, tt.key, pc.Key())
			assert.Equal(t, tt.key, pc.String())
		})
	}
}

func TestParsePageContextKey(t *testing.T) {
	pc, err := ParsePageContextKey("single:artist")
	require.NoError(t, err)
	assert.Equal(t, PageContext{Kind: PageSingular, Type: "artist"}, pc)

	for _, bad := range []string{"home", "single:", "page:event", ""} {
		_, err := ParsePageContextKey(bad)
		assert.Error(t, err, bad)
	}
}

func TestDetector_Modules(t *testing.T) {
	d := NewDetector(DefaultContexts())

	assert.Equal(t, []string{"event-single"}, d.Modules(ParsePageContext("single:event")))
	assert.Equal(t, []string{"events-list"}, d.Modules(ParsePageContext("archive:event-category")))
	assert.Equal(t, []string{"locations-list"}, d.Modules(ParsePageContext("archive:location")))
	assert.Empty(t, d.Modules(ParsePageContext("home")))

	var nilDetector *Detector
	assert.Nil(t, nilDetector.Modules(ParsePageContext("single:event")))
}

func TestDetector_CopiesTable(t *testing.T) {
	table := map[string][]string{"single:event": {"event-single"}}
	d := NewDetector(table)
	table["single:event"][0] = "mutated"

	mods := d.Modules(ParsePageContext("single:event"))
	assert.Equal(t, []string{"event-single"}, mods)
	mods[0] = "mutated"
	assert.Equal(t, []string{"event-single"}, d.Modules(ParsePageContext("single:event")))
}
