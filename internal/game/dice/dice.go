// Package dice provides the randomness abstraction, dice specification
// parsing, and roll-result types used by the battle engine.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice).
type RollResult struct {
	Expression string // original specification string, e.g. "2D6"
	Dice       []int  // individual die results
}

// Total returns the sum of all die results. A malformed specification
// produces an empty result whose total is 0.
func (r RollResult) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2D6 → [4 5] = 9"
func (r RollResult) String() string {
	expr := r.Expression
	if expr == "" {
		expr = "-"
	}
	return fmt.Sprintf("%s → %v = %d", expr, r.Dice, r.Total())
}

// Source is the randomness provider for every roll in a battle: damage dice,
// the trigger die, sleep duration, and the opponent's move choice.
//
// Implementations need not be safe for concurrent use; each battle owns its
// own Source.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Die rolls one die with the given number of sides.
//
// Precondition: sides >= 1.
// Postcondition: Returns a value in [1, sides].
func Die(src Source, sides int) int {
	return src.Intn(sides) + 1
}
