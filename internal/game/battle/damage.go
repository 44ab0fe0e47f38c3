package battle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/effect"
	"github.com/cory-johannsen/monbattle/internal/game/move"
)

// Damage is the output value of one move against one defender, with every
// term kept for the breakdown.
//
// Postcondition: Total == Power + Roll.Total() + sum(Effectiveness) + Modifier.
type Damage struct {
	Move          string
	Power         int
	Roll          dice.RollResult
	Effectiveness []int
	// Modifier is the sum of the attacker's move-strength and damage deltas.
	Modifier  int
	Total     int
	Breakdown string
}

// EffectivenessTotal returns the summed type-effectiveness term.
func (d Damage) EffectivenessTotal() int {
	total := 0
	for _, e := range d.Effectiveness {
		total += e
	}
	return total
}

// ResolveDamage computes mv's output value against a defender with the given
// types. mods is the attacker's current-turn modifier map; only the
// move-strength and damage entries affect the result. The value has no
// ceiling and is only ever compared against the other side's.
func ResolveDamage(mv move.Definition, defenderTypes []string, chart *move.TypeChart, mods map[string]int, roller *dice.Roller) Damage {
	d := Damage{
		Move:  mv.Name,
		Power: mv.Power,
		Roll:  roller.RollSpec(mv.Dice),
	}
	for _, t := range defenderTypes {
		if t == "" {
			continue
		}
		d.Effectiveness = append(d.Effectiveness, chart.Effectiveness(mv.Type, t))
	}
	d.Modifier = mods[effect.StatMoveStrength] + mods[effect.StatDamage]
	d.Total = d.Power + d.Roll.Total() + d.EffectivenessTotal() + d.Modifier
	d.Breakdown = d.breakdown(mv.Dice)
	return d
}

func (d Damage) breakdown(spec string) string {
	eff := make([]string, len(d.Effectiveness))
	for i, e := range d.Effectiveness {
		eff[i] = strconv.Itoa(e)
	}
	if len(eff) == 0 {
		eff = []string{"0"}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s → Power: %d + Roll(%s): %d + Eff(%s)", d.Move, d.Power, spec, d.Roll.Total(), strings.Join(eff, "+"))
	if d.Modifier != 0 {
		fmt.Fprintf(&b, " + Mod(%+d)", d.Modifier)
	}
	fmt.Fprintf(&b, " = %d", d.Total)
	return b.String()
}
