package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/effect"
	"github.com/cory-johannsen/monbattle/internal/game/move"
)

func TestResolveDamage_AllTerms(t *testing.T) {
	chart := move.NewTypeChart(map[string]map[string]int{"Water": {"Fire": 2, "Rock": 1}})
	mv := move.Definition{Name: "Surf", Type: "Water", Power: 2, Dice: "2D6"}
	mods := map[string]int{effect.StatMoveStrength: -1, effect.StatDamage: -1, "speed": 4}

	d := battle.ResolveDamage(mv, []string{"Fire", "Rock"}, chart, mods, dice.NewLoggedRoller(faces(3, 4), nil))

	assert.Equal(t, 7, d.Roll.Total())
	assert.Equal(t, []int{2, 1}, d.Effectiveness)
	assert.Equal(t, -2, d.Modifier)
	assert.Equal(t, 10, d.Total)
	assert.Equal(t, "Surf → Power: 2 + Roll(2D6): 7 + Eff(2+1) + Mod(-2) = 10", d.Breakdown)
}

func TestResolveDamage_MalformedDiceAndUnknownTypes(t *testing.T) {
	src := faces(6)
	mv := move.Definition{Name: "Glitch", Type: "???", Power: 0, Dice: "lots"}
	d := battle.ResolveDamage(mv, []string{"Fire"}, nil, nil, dice.NewLoggedRoller(src, nil))
	assert.Equal(t, 0, d.Total)
	assert.Equal(t, 0, src.Calls())
	assert.Equal(t, "Glitch → Power: 0 + Roll(lots): 0 + Eff(0) = 0", d.Breakdown)
}

func TestResolveDamage_NoDefenderTypes(t *testing.T) {
	mv := move.Definition{Name: "Crush", Type: "Normal", Power: 5, Dice: move.DefaultDice}
	d := battle.ResolveDamage(mv, nil, nil, nil, dice.NewLoggedRoller(faces(1), nil))
	assert.Equal(t, 5, d.Total)
	assert.Equal(t, "Crush → Power: 5 + Roll(0D0): 0 + Eff(0) = 5", d.Breakdown)
}

func TestResolveDamage_SleepSuppression(t *testing.T) {
	mv := move.Definition{Name: "Crush", Power: 5, Dice: move.DefaultDice}
	d := battle.ResolveDamage(mv, nil, nil, map[string]int{effect.StatMoveStrength: effect.SleepSuppression}, dice.NewLoggedRoller(faces(1), nil))
	assert.Equal(t, 5+effect.SleepSuppression, d.Total)
}
