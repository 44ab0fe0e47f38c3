package combatant

import (
	"errors"
	"fmt"
)

// Size is the number of combatants in a party.
const Size = 6

// ErrInvalidSwitch is returned when a switch targets a missing or fainted
// combatant.
var ErrInvalidSwitch = errors.New("invalid switch")

// Party is an ordered roster of Size combatants with one active member.
//
// Invariant: whenever any member is standing, Active() is standing, except
// between its fainting and the following Switch.
type Party struct {
	members []*Combatant
	active  int
}

// NewParty builds a Party from exactly Size records, each starting with hp
// hit points.
//
// Postcondition: Returns a Party whose active index is 0, or an error naming
// the first invalid record.
func NewParty(records []Record, hp int) (*Party, error) {
	if len(records) != Size {
		return nil, fmt.Errorf("party must have exactly %d combatants, got %d", Size, len(records))
	}
	p := &Party{members: make([]*Combatant, 0, Size)}
	for i, rec := range records {
		c, err := New(rec, hp)
		if err != nil {
			return nil, fmt.Errorf("party slot %d: %w", i, err)
		}
		p.members = append(p.members, c)
	}
	return p, nil
}

// Active returns the active combatant.
func (p *Party) Active() *Combatant { return p.members[p.active] }

// ActiveIndex returns the index of the active combatant.
func (p *Party) ActiveIndex() int { return p.active }

// Members returns the roster in order. The slice is a copy; the combatants
// are shared.
func (p *Party) Members() []*Combatant {
	return append([]*Combatant(nil), p.members...)
}

// Member returns the combatant at index i.
func (p *Party) Member(i int) (*Combatant, bool) {
	if i < 0 || i >= len(p.members) {
		return nil, false
	}
	return p.members[i], true
}

// HasAvailable reports whether any member is still standing.
func (p *Party) HasAvailable() bool {
	for _, c := range p.members {
		if !c.IsFainted() {
			return true
		}
	}
	return false
}

// Defeated reports whether every member has fainted.
func (p *Party) Defeated() bool { return !p.HasAvailable() }

// Switch makes member i active.
//
// Postcondition: Returns ErrInvalidSwitch if i is out of range or fainted.
func (p *Party) Switch(i int) error {
	c, ok := p.Member(i)
	if !ok {
		return fmt.Errorf("%w: no combatant at index %d", ErrInvalidSwitch, i)
	}
	if c.IsFainted() {
		return fmt.Errorf("%w: %s has fainted", ErrInvalidSwitch, c.Name)
	}
	p.active = i
	return nil
}

// SwitchToNext makes the first standing member active.
//
// Postcondition: Returns false iff no member is standing.
func (p *Party) SwitchToNext() bool {
	for i, c := range p.members {
		if !c.IsFainted() {
			p.active = i
			return true
		}
	}
	return false
}

// Summaries returns a snapshot of every member.
func (p *Party) Summaries() []Summary {
	out := make([]Summary, len(p.members))
	for i, c := range p.members {
		out[i] = c.Summary()
	}
	return out
}
