package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenes_UniqueIDs(t *testing.T) {
	all := Scenes()
	require.Len(t, all, 14)

	seen := make(map[string]bool)
	for _, s := range all {
		assert.NotEmpty(t, s.Name, s.ID)
		assert.Regexp(t, `^#[0-9A-F]{6}$`, s.Color, s.ID)
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
	assert.Equal(t, "system", all[0].ID)
	assert.Equal(t, "cross-platform", all[len(all)-1].ID)
}

func TestScenes_ReturnsCopy(t *testing.T) {
	first := Scenes()
	first[0].Name = "changed"

	again := Scenes()
	assert.Len(t, again, 14)
	assert.Equal(t, "Systems programming", again[0].Name)
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("network")
	require.True(t, ok)
	assert.Equal(t, "Network programming", s.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
