package schema

import (
	"fmt"
	"testing"

	"csv2sqlite/internal/models"
)

// tableFromColumns builds a test table where each column's values are
// generated to hit a target distinct count over the given row count
func tableFromColumns(rows int, cols map[string]int, order []string) *models.Table {
	table := &models.Table{Name: "t"}
	for _, name := range order {
		table.Columns = append(table.Columns, models.Column{Name: name, Type: models.TypeText})
	}
	table.Rows = make([][]string, rows)
	for r := 0; r < rows; r++ {
		row := make([]string, len(order))
		for i, name := range order {
			distinct := cols[name]
			row[i] = fmt.Sprintf("v%d", r%distinct)
		}
		table.Rows[r] = row
	}
	return table
}

func TestScoreColumn(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected int
	}{
		{"order_id", 0.9, 4},        // short id name
		{"a_very_long_identifier_col", 0.9, 0}, // contains "id" but too long
		{"order_date", 0.9, 3},      // temporal name
		{"timestamp", 0.9, 3},       // temporal name, no id bonus (len 9 but no "id")
		{"region", 0.9, 2},          // categorical name
		{"segment", 0.01, 4},        // categorical name + low ratio
		{"value", 0.04, 2},          // low ratio only
		{"value", 0.08, 1},          // ratio under 2x threshold
		{"value", 0.9, 0},           // nothing
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%v", tt.name, tt.ratio), func(t *testing.T) {
			score := scoreColumn(tt.name, tt.ratio, 0.05)
			if score != tt.expected {
				t.Errorf("scoreColumn(%q, %v) = %d, want %d", tt.name, tt.ratio, score, tt.expected)
			}
		})
	}
}

func TestCardinalityRatio(t *testing.T) {
	table := &models.Table{
		Columns: []models.Column{{Name: "a"}},
		Rows:    [][]string{{"x"}, {"y"}, {"x"}, {"x"}},
	}
	if got := cardinalityRatio(table, 0); got != 0.5 {
		t.Errorf("cardinalityRatio = %v, want 0.5", got)
	}

	// No rows means the ratio cannot be computed: worst case
	empty := &models.Table{Columns: []models.Column{{Name: "a"}}}
	if got := cardinalityRatio(empty, 0); got != 1.0 {
		t.Errorf("cardinalityRatio on empty table = %v, want 1.0", got)
	}
}

// TestSuggestIndexesRanking checks that a low-cardinality categorical
// column ranks above a high-cardinality generic one
func TestSuggestIndexesRanking(t *testing.T) {
	table := tableFromColumns(100, map[string]int{"region": 1, "value": 90}, []string{"value", "region"})

	suggested := SuggestIndexes(table, 0.05, 5)

	if len(suggested) != 1 {
		t.Fatalf("SuggestIndexes = %v, want exactly [region]", suggested)
	}
	if suggested[0] != "region" {
		t.Errorf("Top suggestion = %q, want %q", suggested[0], "region")
	}
}

// TestSuggestIndexesCap verifies the advisor never exceeds maxIndexes
func TestSuggestIndexesCap(t *testing.T) {
	order := []string{"region", "state", "city", "category", "segment", "order_date", "row_id"}
	counts := map[string]int{}
	for _, name := range order {
		counts[name] = 1
	}
	table := tableFromColumns(50, counts, order)

	suggested := SuggestIndexes(table, 0.05, 5)
	if len(suggested) > 5 {
		t.Errorf("SuggestIndexes returned %d columns, cap is 5: %v", len(suggested), suggested)
	}

	suggested = SuggestIndexes(table, 0.05, 2)
	if len(suggested) != 2 {
		t.Errorf("SuggestIndexes with cap 2 returned %d columns: %v", len(suggested), suggested)
	}
}

// TestSuggestIndexesZeroScoreExcluded verifies zero-score columns never
// appear even when the cap has room
func TestSuggestIndexesZeroScoreExcluded(t *testing.T) {
	table := tableFromColumns(100, map[string]int{"notes": 95, "region": 2}, []string{"notes", "region"})

	suggested := SuggestIndexes(table, 0.05, 5)
	for _, name := range suggested {
		if name == "notes" {
			t.Errorf("Zero-score column %q was suggested: %v", name, suggested)
		}
	}
}

// TestSuggestIndexesStableTieBreak verifies that columns equal on both
// score and ratio keep their original schema order
func TestSuggestIndexesStableTieBreak(t *testing.T) {
	// region and state: same name-pattern score (+2), same distinct count
	table := tableFromColumns(100, map[string]int{"state": 2, "region": 2}, []string{"state", "region"})

	suggested := SuggestIndexes(table, 0.05, 5)
	if len(suggested) < 2 {
		t.Fatalf("Expected both tied columns, got %v", suggested)
	}
	if suggested[0] != "state" || suggested[1] != "region" {
		t.Errorf("Tie-break order = %v, want [state region] (schema order)", suggested)
	}
}

// TestSuggestIndexesRatioTieBreak verifies equal scores order by ratio
// ascending
func TestSuggestIndexesRatioTieBreak(t *testing.T) {
	// Both categorical names score +2+2; city has fewer distinct values
	table := tableFromColumns(100, map[string]int{"region": 4, "city": 2}, []string{"region", "city"})

	suggested := SuggestIndexes(table, 0.05, 5)
	if len(suggested) != 2 {
		t.Fatalf("Expected two suggestions, got %v", suggested)
	}
	if suggested[0] != "city" {
		t.Errorf("Lower-ratio column should rank first, got %v", suggested)
	}
}
