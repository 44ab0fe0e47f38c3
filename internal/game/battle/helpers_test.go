package battle_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combatant"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/effect"
	"github.com/cory-johannsen/monbattle/internal/game/move"
)

// testCatalog holds moves whose totals are fixed unless they roll dice.
func testCatalog() *move.Catalog {
	return move.NewCatalog(
		move.Definition{Name: "Slam", Type: "Normal", Power: 0, Dice: "1D6"},
		move.Definition{Name: "Peck", Type: "Flying", Power: 0, Dice: "1D6"},
		move.Definition{Name: "Nudge", Type: "Normal", Power: 0, Dice: move.DefaultDice},
		move.Definition{Name: "Crush", Type: "Normal", Power: 5, Dice: move.DefaultDice},
		move.Definition{Name: "Sludge", Type: "Poison", Power: 0, Dice: "1D6",
			Effects: effect.NewRequirementSet(effect.Requirement{Effect: "poison", Thresholds: []int{3}})},
		move.Definition{Name: "Hypnosis", Type: "Psychic", Power: 0, Dice: move.DefaultDice,
			Effects: effect.ParseRequirements("Sleep")},
		move.Definition{Name: "Ember", Type: "Fire", Power: 1, Dice: move.DefaultDice,
			Effects: effect.ParseRequirements("Burn")},
		move.Definition{Name: "Bite", Type: "Dark", Power: 0, Dice: move.DefaultDice,
			Effects: effect.ParseRequirements("Flinch")},
		move.Definition{Name: "Jab", Type: "Fighting", Power: 1, Dice: move.DefaultDice},
	)
}

func roster(prefix string, moves ...string) []combatant.Record {
	recs := make([]combatant.Record, combatant.Size)
	for i := range recs {
		recs[i] = combatant.Record{Name: fmt.Sprintf("%s%d", prefix, i), Types: []string{"Normal"}, Moves: moves}
	}
	return recs
}

func testRules(t testing.TB) battle.Rules {
	t.Helper()
	reg, err := effect.DefaultRegistry().With(effect.Definition{
		Name:              "flinch",
		NextTurnModifiers: map[string]int{effect.StatMoveStrength: -5},
	})
	require.NoError(t, err)
	return battle.Rules{Catalog: testCatalog(), Effects: reg}
}

// newBattle returns a controller past Preview with the player's first member
// active, driven by the scripted die faces.
func newBattle(t testing.TB, src dice.Source, playerMoves, opponentMoves []string) *battle.Controller {
	t.Helper()
	ctrl, err := battle.NewController("test", testRules(t), roster("Ally", playerMoves...), roster("Foe", opponentMoves...), src, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, ctrl.ChooseStarter(0))
	return ctrl
}

func faces(f ...int) *dice.SequenceSource {
	return &dice.SequenceSource{Faces: f}
}
