package suggest

import (
	"sort"

	"delegen/internal/common"
)

// DefaultThreshold is the minimum similarity a candidate needs to be suggested.
const DefaultThreshold = 0.65

// DefaultLimit is the maximum number of suggestions returned by Closest.
const DefaultLimit = 3

type scored struct {
	name  string
	score float64
}

// Score compares a misspelled name with a candidate. Both the qualified and
// the simple spelling are tried and the better similarity wins.
func Score(name, candidate string) float64 {
	full := Similarity(Normalize(name), Normalize(candidate))
	simple := Similarity(Normalize(common.SimpleName(name)), Normalize(common.SimpleName(candidate)))

	return max(full, simple)
}

// Closest returns up to limit candidates similar to name, best first.
// Exact matches are not suggested. Ties are broken alphabetically.
func Closest(name string, candidates []string, limit int) []string {
	if name == "" || limit <= 0 {
		return nil
	}

	var ranked []scored

	seen := make(map[string]bool, len(candidates))

	for _, c := range candidates {
		if c == name || seen[c] {
			continue
		}

		seen[c] = true

		if s := Score(name, c); s >= DefaultThreshold {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
