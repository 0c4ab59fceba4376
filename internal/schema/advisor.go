package schema

import (
	"sort"
	"strings"

	"csv2sqlite/internal/models"
)

// candidate pairs a column with its heuristic score and cardinality ratio
type candidate struct {
	name  string
	score int
	ratio float64
}

// SuggestIndexes scores each column and returns the names of the top
// maxIndexes candidates. The heuristic prefers short id-like names,
// temporal names, region/category-like names, and low-cardinality
// (categorical) columns. Zero-score columns are never returned.
//
// Ordering is score descending, then ratio ascending; columns that tie on
// both keep their original schema order.
func SuggestIndexes(t *models.Table, maxRatio float64, maxIndexes int) []string {
	var candidates []candidate
	for i, col := range t.Columns {
		ratio := cardinalityRatio(t, i)
		score := scoreColumn(col.Name, ratio, maxRatio)
		if score > 0 {
			candidates = append(candidates, candidate{name: col.Name, score: score, ratio: ratio})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		return candidates[a].ratio < candidates[b].ratio
	})

	if len(candidates) > maxIndexes {
		candidates = candidates[:maxIndexes]
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}

// scoreColumn applies the name-pattern and cardinality heuristics
func scoreColumn(name string, ratio, maxRatio float64) int {
	lower := strings.ToLower(name)

	score := 0
	if strings.Contains(lower, "id") && len(lower) <= 10 {
		score += 4
	}
	if containsAny(lower, "date", "timestamp", "time") {
		score += 3
	}
	if containsAny(lower, "region", "state", "city", "category", "segment") {
		score += 2
	}
	switch {
	case ratio < maxRatio:
		score += 2
	case ratio < maxRatio*2:
		score += 1
	}
	return score
}

// cardinalityRatio is distinct-value-count / row-count for a column.
// When it cannot be computed (no rows) the column gets the worst-case 1.0.
func cardinalityRatio(t *models.Table, col int) float64 {
	if len(t.Rows) == 0 {
		return 1.0
	}
	distinct := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		distinct[row[col]] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(t.Rows))
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
