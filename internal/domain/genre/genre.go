// Package genre provides the fixed genre/subgenre taxonomy.
package genre

import "strings"

// Genre represents a top-level genre with its ordered subgenres.
type Genre struct {
	Key       string   // Value sent to the recommender (e.g. "rock")
	Label     string   // Display label
	Subgenres []string // Ordered subgenre values
}

// taxonomy is the compiled-in genre list in display order.
var taxonomy = []Genre{
	{Key: "rock", Label: "Rock", Subgenres: []string{"hard rock", "album rock", "permanent wave", "classic rock"}},
	{Key: "r&b", Label: "R&B", Subgenres: []string{"new jack swing", "neo soul", "urban contemporary", "hip pop"}},
	{Key: "pop", Label: "Pop", Subgenres: []string{"dance pop", "indie poptimism", "post-teen pop", "electropop"}},
	{Key: "edm", Label: "EDM", Subgenres: []string{"big room", "progressive electro house", "pop edm", "electro house"}},
	{Key: "rap", Label: "Rap", Subgenres: []string{"gangster rap", "trap", "southern hip hop", "hip hop"}},
	{Key: "latin", Label: "Latin", Subgenres: []string{"tropical", "latin hip hop", "latin pop", "reggaeton"}},
}

// All returns all genres in display order.
func All() []Genre {
	out := make([]Genre, len(taxonomy))
	for i, g := range taxonomy {
		out[i] = Genre{
			Key:       g.Key,
			Label:     g.Label,
			Subgenres: append([]string(nil), g.Subgenres...),
		}
	}
	return out
}

// Keys returns the genre keys in display order.
func Keys() []string {
	keys := make([]string, len(taxonomy))
	for i, g := range taxonomy {
		keys[i] = g.Key
	}
	return keys
}

// Lookup returns the genre for the given key.
func Lookup(key string) (Genre, bool) {
	for _, g := range taxonomy {
		if g.Key == key {
			return g, true
		}
	}
	return Genre{}, false
}

// Subgenres returns a copy of the subgenres for the given genre key.
// Returns nil for an empty or unknown key.
func Subgenres(key string) []string {
	g, ok := Lookup(key)
	if !ok {
		return nil
	}
	return append([]string(nil), g.Subgenres...)
}

// Label returns the display label for a subgenre value ("hard rock" -> "Hard rock").
func Label(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
