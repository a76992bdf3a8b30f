package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubgenres(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected []string
	}{
		{
			name:     "rock",
			key:      "rock",
			expected: []string{"hard rock", "album rock", "permanent wave", "classic rock"},
		},
		{
			name:     "r&b",
			key:      "r&b",
			expected: []string{"new jack swing", "neo soul", "urban contemporary", "hip pop"},
		},
		{
			name:     "latin",
			key:      "latin",
			expected: []string{"tropical", "latin hip hop", "latin pop", "reggaeton"},
		},
		{
			name:     "empty key",
			key:      "",
			expected: nil,
		},
		{
			name:     "unknown key",
			key:      "jazz",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Subgenres(tt.key))
		})
	}
}

func TestAll_SixGenresWithFourSubgenres(t *testing.T) {
	all := All()
	assert.Equal(t, []string{"rock", "r&b", "pop", "edm", "rap", "latin"}, Keys())
	assert.Len(t, all, 6)
	for _, g := range all {
		assert.Len(t, g.Subgenres, 4, "genre %s", g.Key)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Subgenres[0] = "mutated"

	assert.Equal(t, "hard rock", Subgenres("rock")[0])
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Hard rock", Label("hard rock"))
	assert.Equal(t, "Post-teen pop", Label("post-teen pop"))
	assert.Equal(t, "", Label(""))
}
