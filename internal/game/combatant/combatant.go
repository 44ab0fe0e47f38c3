// Package combatant models the fighters of a battle: a single Combatant with
// its HP, moves, types, status, and modifier ledger, and a Party of them.
package combatant

import (
	"fmt"
	"strings"
)

// NoMove is the sentinel for an empty move slot.
const NoMove = "-"

// MoveSlots is the number of move slots a combatant has.
const MoveSlots = 3

// MaxTypes is the number of elemental types a combatant may carry.
const MaxTypes = 2

// Record is the validated raw description of one combatant, as supplied by
// a roster provider.
type Record struct {
	Name  string   `yaml:"name"`
	Types []string `yaml:"types"`
	Moves []string `yaml:"moves"`
}

// Validate checks the record's invariants.
//
// Postcondition: Returns nil iff Name is non-empty, there are at most MaxTypes
// types, at most MoveSlots moves, and at least one non-empty move.
func (r Record) Validate() error {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if len(r.Types) > MaxTypes {
		errs = append(errs, fmt.Sprintf("at most %d types allowed, got %d", MaxTypes, len(r.Types)))
	}
	if len(r.Moves) > MoveSlots {
		errs = append(errs, fmt.Sprintf("at most %d moves allowed, got %d", MoveSlots, len(r.Moves)))
	}
	legal := 0
	for _, m := range r.Moves {
		if !isEmptyMove(m) {
			legal++
		}
	}
	if legal == 0 {
		errs = append(errs, "at least one move is required")
	}
	if len(errs) > 0 {
		return fmt.Errorf("combatant %q: %s", r.Name, strings.Join(errs, "; "))
	}
	return nil
}

func isEmptyMove(m string) bool {
	m = strings.TrimSpace(m)
	return m == "" || m == NoMove
}

// Combatant is one fighter in a battle.
//
// Invariant: 1 <= MaxHP; CurrentHP <= MaxHP; Status is "" or a single effect name.
type Combatant struct {
	Name      string
	CurrentHP int
	MaxHP     int
	Moves     [MoveSlots]string
	Types     []string
	// Status is the single active effect name, or "" for none.
	Status string
	// Counters holds effect-specific counters keyed by effect name, e.g.
	// remaining sleep turns or accumulated poison stacks.
	Counters map[string]int
	Ledger   *Ledger
}

// New builds a Combatant from rec with hp current and maximum hit points.
//
// Precondition: rec must pass Validate; hp >= 1.
func New(rec Record, hp int) (*Combatant, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if hp < 1 {
		return nil, fmt.Errorf("combatant %q: hp must be >= 1, got %d", rec.Name, hp)
	}
	c := &Combatant{
		Name:      strings.TrimSpace(rec.Name),
		CurrentHP: hp,
		MaxHP:     hp,
		Counters:  make(map[string]int),
		Ledger:    NewLedger(),
	}
	for i := range c.Moves {
		c.Moves[i] = NoMove
	}
	for i, m := range rec.Moves {
		if !isEmptyMove(m) {
			c.Moves[i] = strings.TrimSpace(m)
		}
	}
	for _, t := range rec.Types {
		if t = strings.TrimSpace(t); t != "" && t != NoMove {
			c.Types = append(c.Types, t)
		}
	}
	return c, nil
}

// IsFainted reports whether the combatant has no HP left.
func (c *Combatant) IsFainted() bool { return c.CurrentHP <= 0 }

// LegalMoves returns the non-empty move names in slot order.
func (c *Combatant) LegalMoves() []string {
	out := make([]string, 0, MoveSlots)
	for _, m := range c.Moves {
		if m != NoMove {
			out = append(out, m)
		}
	}
	return out
}

// HasMove reports whether name is one of the combatant's legal moves.
func (c *Combatant) HasMove(name string) bool {
	for _, m := range c.LegalMoves() {
		if m == name {
			return true
		}
	}
	return false
}

// LoseHP removes amount hit points, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP >= 0.
func (c *Combatant) LoseHP(amount int) {
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// ReduceMaxHP permanently lowers MaxHP by amount, never below 1, and clamps
// CurrentHP to the new maximum. It returns the HP lost to the clamp.
//
// Postcondition: MaxHP >= 1 and CurrentHP <= MaxHP.
func (c *Combatant) ReduceMaxHP(amount int) int {
	c.MaxHP -= amount
	if c.MaxHP < 1 {
		c.MaxHP = 1
	}
	lost := 0
	if c.CurrentHP > c.MaxHP {
		lost = c.CurrentHP - c.MaxHP
		c.CurrentHP = c.MaxHP
	}
	return lost
}

// HasStatus reports whether any status is active.
func (c *Combatant) HasStatus() bool { return c.Status != "" }

// Summary is a read-only snapshot of a combatant for presentation layers.
type Summary struct {
	Name    string
	HP      int
	MaxHP   int
	Status  string
	Types   []string
	Fainted bool
}

// Summary returns a snapshot of the combatant.
func (c *Combatant) Summary() Summary {
	return Summary{
		Name:    c.Name,
		HP:      c.CurrentHP,
		MaxHP:   c.MaxHP,
		Status:  c.Status,
		Types:   append([]string(nil), c.Types...),
		Fainted: c.IsFainted(),
	}
}
