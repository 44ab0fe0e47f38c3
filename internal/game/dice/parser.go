package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCount is the largest die count an expression may roll.
const MaxCount = 1000

// Expression is a parsed "NDM" dice specification: roll Count dice with
// Sides faces each.
//
// Invariant: 1 <= Count <= MaxCount and Sides >= 1 after a successful Parse.
type Expression struct {
	Raw   string
	Count int
	Sides int
}

// Min returns the smallest total the expression can roll.
func (e Expression) Min() int { return e.Count }

// Max returns the largest total the expression can roll.
func (e Expression) Max() int { return e.Count * e.Sides }

// Parse parses a dice specification of the form "NDM" (case-insensitive,
// surrounding whitespace ignored).
//
// Postcondition: Returns an Expression with 1 <= Count <= MaxCount and
// Sides >= 1, or a descriptive error.
func Parse(spec string) (Expression, error) {
	s := strings.ToUpper(strings.TrimSpace(spec))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty specification")
	}
	countStr, sidesStr, ok := strings.Cut(s, "D")
	if !ok {
		return Expression{}, fmt.Errorf("dice: missing 'D' in specification %q", spec)
	}
	count, err := parseDigits(countStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", spec, err)
	}
	sides, err := parseDigits(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", spec, err)
	}
	if count < 1 {
		return Expression{}, fmt.Errorf("dice: die count in %q must be >= 1", spec)
	}
	if count > MaxCount {
		return Expression{}, fmt.Errorf("dice: die count in %q must be <= %d", spec, MaxCount)
	}
	if sides < 1 {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be >= 1", spec)
	}
	return Expression{Raw: spec, Count: count, Sides: sides}, nil
}

// parseDigits accepts only an unsigned run of ASCII digits.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected character %q", r)
		}
	}
	return strconv.Atoi(s)
}

// MustParse parses spec and panics on error. Useful in tests and fixtures.
func MustParse(spec string) Expression {
	e, err := Parse(spec)
	if err != nil {
		panic("dice: MustParse failed for specification " + spec + ": " + err.Error())
	}
	return e
}
