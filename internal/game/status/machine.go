// Package status governs the single active status effect on a combatant:
// application, once-per-round upkeep, expiry, and the turn modifiers the
// status contributes.
package status

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/monbattle/internal/game/battlelog"
	"github.com/cory-johannsen/monbattle/internal/game/combatant"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/effect"
)

// DefaultSleepDie is the die rolled for sleep duration; the duration is
// max(1, roll-1).
const DefaultSleepDie = 4

// Machine applies, maintains, and clears statuses using an immutable effect
// registry and the battle's dice.
type Machine struct {
	reg      *effect.Registry
	roller   *dice.Roller
	sleepDie int
}

// NewMachine creates a Machine. A non-positive sleepDie falls back to
// DefaultSleepDie.
//
// Precondition: reg and roller must be non-nil.
func NewMachine(reg *effect.Registry, roller *dice.Roller, sleepDie int) *Machine {
	if sleepDie < 1 {
		sleepDie = DefaultSleepDie
	}
	return &Machine{reg: reg, roller: roller, sleepDie: sleepDie}
}

// Registry returns the effect registry the machine consults.
func (m *Machine) Registry() *effect.Registry { return m.reg }

// Apply tries to give c the status name, inflicted by moveName.
//
// Postcondition: Returns false and leaves c unchanged if c already has a
// status. Otherwise c.Status == name, c.Counters[name] is initialized, and an
// application line is logged.
func (m *Machine) Apply(c *combatant.Combatant, name, moveName string, log *battlelog.Log) bool {
	name = effect.NormalizeName(name)
	if name == "" {
		return false
	}
	if c.HasStatus() {
		log.Addf("%s is already affected by %s.", c.Name, c.Status)
		return false
	}
	c.Status = name
	c.Counters[name] = 0

	switch m.reg.KindOf(name) {
	case effect.KindSleep:
		duration := max(1, m.roller.Die(m.sleepDie)-1)
		c.Counters[name] = duration
		log.Addf("%s is put to sleep for %d turns by %s!", c.Name, duration, moveName)
	case effect.KindParalyze:
		log.Addf("%s is paralyzed by %s!", c.Name, moveName)
	case effect.KindBurn:
		log.Addf("%s is burned by %s!", c.Name, moveName)
	case effect.KindPoison:
		log.Addf("%s is poisoned by %s!", c.Name, moveName)
	default:
		log.Addf("%s is affected by %s from %s.", c.Name, name, moveName)
	}
	return true
}

// Clear removes c's status.
//
// Postcondition: c.HasStatus() is false; the cleared effect's counter is removed.
func (m *Machine) Clear(c *combatant.Combatant) {
	if c.Status == "" {
		return
	}
	delete(c.Counters, c.Status)
	c.Status = ""
}

// UpkeepResult reports one upkeep call. Err is set for a recoverable
// failure; in that case c was left unchanged.
type UpkeepResult struct {
	Effect  string
	Ran     bool
	Cleared bool
	Err     error
}

// Upkeep runs c's status upkeep routine, if it has one.
//
// Postcondition: Ran is false when c has no status or the status has no
// upkeep routine. Failures are logged and returned in Err, never panicked.
func (m *Machine) Upkeep(c *combatant.Combatant, log *battlelog.Log) UpkeepResult {
	res := UpkeepResult{Effect: c.Status}
	if !c.HasStatus() {
		return res
	}
	def, ok := m.reg.Get(c.Status)
	if !ok || !def.HasUpkeep() {
		return res
	}
	u, err := def.RunUpkeep(c.Name, c.Counters[c.Status])
	if err != nil {
		res.Err = fmt.Errorf("upkeep %s: %w", c.Status, err)
		log.Addf("Error in %s upkeep: %v", c.Status, err)
		return res
	}
	res.Ran = true
	for _, line := range u.Lines {
		log.Add(line)
	}
	c.Counters[c.Status] = u.Counter
	if u.MaxHPLoss > 0 {
		lost := c.ReduceMaxHP(u.MaxHPLoss)
		log.Addf("%s is weakened by %s! Max HP reduced to %d.", c.Name, c.Status, c.MaxHP)
		if lost > 0 {
			log.Addf("%s loses %d HP due to %s strain.", c.Name, lost, c.Status)
		}
	}
	if u.Cleared {
		res.Cleared = true
		m.Clear(c)
	}
	return res
}

// ApplyModifiers merges the turn modifiers of c's status into its ledger:
// current-turn deltas into this turn, queued deltas into the next.
func (m *Machine) ApplyModifiers(c *combatant.Combatant, log *battlelog.Log) {
	if !c.HasStatus() {
		return
	}
	def, ok := m.reg.Get(c.Status)
	if !ok {
		return
	}
	now := def.CurrentTurnModifiers(c.Counters[c.Status])
	for _, stat := range sortedKeys(now) {
		c.Ledger.AddCurrent(stat, now[stat])
		log.Addf("%s gets %s %+d this turn from %s!", c.Name, stat, now[stat], c.Status)
	}
	next := def.QueuedModifiers()
	for _, stat := range sortedKeys(next) {
		c.Ledger.AddNext(stat, next[stat])
		log.Addf("%s will get %s %+d next turn from %s.", c.Name, stat, next[stat], c.Status)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
