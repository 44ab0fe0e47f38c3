package effect

import (
	"strings"

	"github.com/cory-johannsen/monbattle/internal/game/battlelog"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// DefaultTriggerDie is the number of faces on the trigger die.
const DefaultTriggerDie = 6

// Trigger rolls the trigger die against a RequirementSet.
type Trigger struct {
	roller *dice.Roller
	sides  int
}

// NewTrigger creates a Trigger rolling a die with sides faces through roller.
// A non-positive sides falls back to DefaultTriggerDie.
//
// Precondition: roller must be non-nil.
func NewTrigger(roller *dice.Roller, sides int) *Trigger {
	if sides < 1 {
		sides = DefaultTriggerDie
	}
	return &Trigger{roller: roller, sides: sides}
}

// Sides returns the number of faces on the trigger die.
func (t *Trigger) Sides() int { return t.sides }

// Evaluate draws one fresh roll per registered threshold, in set order. An
// effect triggers the first time a roll is >= threshold - mods[effect]; its
// remaining thresholds are then skipped. Every roll is written to log.
//
// Postcondition: Returns the triggered effect names in set order, each at
// most once. An empty set draws no rolls and returns nil.
func (t *Trigger) Evaluate(set *RequirementSet, mods map[string]int, log *battlelog.Log) []string {
	if set.Empty() {
		return nil
	}
	var triggered []string
	for _, req := range set.reqs {
		need := func(threshold int) int { return threshold - mods[req.Effect] }
		label := strings.ToUpper(req.Effect)
		for _, threshold := range req.Thresholds {
			roll := t.roller.Die(t.sides)
			if roll >= need(threshold) {
				log.Addf("%s roll: %d ≥ %d → triggered!", label, roll, need(threshold))
				triggered = append(triggered, req.Effect)
				break
			}
			log.Addf("%s roll: %d < %d → failed", label, roll, need(threshold))
		}
	}
	return triggered
}
