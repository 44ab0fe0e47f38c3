package combatant

import "maps"

// Ledger holds a combatant's turn-scoped stat deltas and the deltas queued
// for its next turn.
//
// Lifecycle: Begin is called at the start of resolving the combatant's
// action; it clears the current turn, moves every queued delta into it, and
// empties the queue, so a delta queued in round N applies in round N+1 only.
type Ledger struct {
	thisTurn map[string]int
	nextTurn map[string]int
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{thisTurn: make(map[string]int), nextTurn: make(map[string]int)}
}

// Begin starts a new turn and returns the deltas carried over from the
// previous one.
//
// Postcondition: Current() equals the previous queue; the queue is empty.
func (l *Ledger) Begin() map[string]int {
	carried := l.nextTurn
	l.thisTurn = maps.Clone(carried)
	l.nextTurn = make(map[string]int)
	return carried
}

// AddCurrent adds delta to stat for the current turn.
func (l *Ledger) AddCurrent(stat string, delta int) {
	l.thisTurn[stat] += delta
}

// AddNext queues delta to stat for the next turn.
func (l *Ledger) AddNext(stat string, delta int) {
	l.nextTurn[stat] += delta
}

// Current returns a copy of the current-turn deltas.
func (l *Ledger) Current() map[string]int { return maps.Clone(l.thisTurn) }

// Next returns a copy of the queued next-turn deltas.
func (l *Ledger) Next() map[string]int { return maps.Clone(l.nextTurn) }

// Get returns the current-turn delta for stat.
func (l *Ledger) Get(stat string) int { return l.thisTurn[stat] }
