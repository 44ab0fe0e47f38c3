package move

import "strings"

// TypeChart looks up the signed effectiveness bonus of an attacking type
// against a defending type.
type TypeChart struct {
	bonus map[string]map[string]int
}

// NewTypeChart builds a chart from attacking type -> defending type -> bonus.
// Type names are trimmed.
func NewTypeChart(m map[string]map[string]int) *TypeChart {
	tc := &TypeChart{bonus: make(map[string]map[string]int, len(m))}
	for atk, row := range m {
		atk = strings.TrimSpace(atk)
		if tc.bonus[atk] == nil {
			tc.bonus[atk] = make(map[string]int, len(row))
		}
		for def, v := range row {
			tc.bonus[atk][strings.TrimSpace(def)] = v
		}
	}
	return tc
}

// Effectiveness returns the bonus for attacking against defending, or 0 for
// an unknown pair. A nil chart knows no pairs.
func (tc *TypeChart) Effectiveness(attacking, defending string) int {
	if tc == nil {
		return 0
	}
	return tc.bonus[strings.TrimSpace(attacking)][strings.TrimSpace(defending)]
}
