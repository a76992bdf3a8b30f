package artist

import (
	"context"
	"sort"
	"strings"

	zlog "github.com/rs/zerolog/log"
)

// DefaultLimit is the maximum number of search results.
const DefaultLimit = 10

// Index holds the loaded artist names, sorted ascending.
// It is not modified after loading.
type Index struct {
	names []string
	lower []string
	limit int
}

// NewIndex creates an index from the given names.
// The names are copied and sorted; limit <= 0 uses DefaultLimit.
func NewIndex(names []string, limit int) *Index {
	if limit <= 0 {
		limit = DefaultLimit
	}

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	lower := make([]string, len(sorted))
	for i, n := range sorted {
		lower[i] = strings.ToLower(n)
	}

	return &Index{
		names: sorted,
		lower: lower,
		limit: limit,
	}
}

// Load tries each source in order and indexes the first list that is
// fetched and parsed successfully. If every source fails, the failure is
// logged and an empty index is returned.
func Load(ctx context.Context, sources []Source, limit int) *Index {
	for i, src := range sources {
		names, err := src.Fetch(ctx)
		if err != nil {
			zlog.Debug().Msgf("artist source failed, trying next: index=%d source=%s error=%v", i+1, src.Name(), err)
			continue
		}

		idx := NewIndex(names, limit)
		zlog.Info().Msgf("Loaded %d artists from %s", idx.Len(), src.Name())
		return idx
	}

	zlog.Error().Msgf("Could not load artists from any source (tried %d); autocomplete is disabled", len(sources))
	return NewIndex(nil, limit)
}

// Search returns up to the index limit of names, in index order, whose
// lowercase form contains the lowercase query. An empty query matches nothing.
func (x *Index) Search(query string) []string {
	if len(query) < 1 {
		return nil
	}

	q := strings.ToLower(query)
	var results []string
	for i, l := range x.lower {
		if !strings.Contains(l, q) {
			continue
		}
		results = append(results, x.names[i])
		if len(results) == x.limit {
			break
		}
	}
	return results
}

// Len returns the number of indexed names.
func (x *Index) Len() int {
	return len(x.names)
}

// Names returns a copy of the indexed names.
func (x *Index) Names() []string {
	return append([]string(nil), x.names...)
}
