package voice

import (
	"math"
	"strings"

	"github.com/hazyhaar/pantry-voice/pkg/pantry"
)

// Match scoring constants. Prefix and substring relations are treated
// as near-certain because spoken product names are frequently truncated
// or extended ("leite" vs "leite integral"); the token-overlap fallback
// is discounted below them so weak partial overlaps never out-rank a
// real substring relation. All values are empirical tunables, not
// derived quantities.
const (
	ScoreExact     = 1.0
	ScorePrefix    = 0.9
	ScoreSubstring = 0.8
	OverlapWeight  = 0.75
	CoverageWeight = 0.70

	// MinMatchScore is the confidence floor: best candidates scoring
	// below it are treated as no match.
	MinMatchScore = 0.45
)

// BestMatch finds the inventory item best matching a spoken product
// name, or nil when nothing reaches the confidence floor. Exact score
// ties keep the first item in iteration order. The input slice is never
// mutated.
func BestMatch(items []pantry.Item, spokenName string) *pantry.Item {
	query := NormalizeText(spokenName)
	if query == "" {
		return nil
	}

	best := -1
	bestScore := 0.0
	for i := range items {
		name := NormalizeText(items[i].Name)
		if name == "" {
			continue
		}
		if score := nameScore(name, query); score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 || bestScore < MinMatchScore {
		return nil
	}
	return &items[best]
}

// nameScore rates two normalized names with a layered rule: the first
// applicable relation wins and no further rules run.
func nameScore(name, query string) float64 {
	switch {
	case name == query:
		return ScoreExact
	case strings.HasPrefix(name, query) || strings.HasPrefix(query, name):
		return ScorePrefix
	case strings.Contains(name, query) || strings.Contains(query, name):
		return ScoreSubstring
	}

	nameTokens := tokens(name)
	queryTokens := tokens(query)
	overlap := tokenOverlap(nameTokens, queryTokens)
	coverage := tokenCoverage(nameTokens, queryTokens)
	return math.Max(overlap*OverlapWeight, coverage*CoverageWeight)
}

// tokenOverlap is the Jaccard similarity of the two token sets.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	aSet := toSet(a)
	bSet := toSet(b)

	intersection := 0
	for t := range aSet {
		if _, ok := bSet[t]; ok {
			intersection++
		}
	}
	union := len(aSet) + len(bSet) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// tokenCoverage is the fraction of query tokens present in the item
// name, so a short spoken name fully contained in a longer one still
// scores high.
func tokenCoverage(name, query []string) float64 {
	if len(name) == 0 || len(query) == 0 {
		return 0
	}
	nameSet := toSet(name)
	querySet := toSet(query)

	intersection := 0
	for t := range querySet {
		if _, ok := nameSet[t]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(len(querySet))
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
