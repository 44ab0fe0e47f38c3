package battle_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

func TestEngine_StartAndEnd(t *testing.T) {
	e := battle.NewEngine(testRules(t), nil, nil)

	ctrl, err := e.StartBattle(roster("Ally", "Slam"), roster("Foe", "Peck"))
	require.NoError(t, err)
	_, err = uuid.Parse(ctrl.ID())
	assert.NoError(t, err)
	assert.Equal(t, battle.StatePreview, ctrl.State())
	assert.Equal(t, 1, e.Count())

	got, ok := e.Battle(ctrl.ID())
	require.True(t, ok)
	assert.Same(t, ctrl, got)

	e.EndBattle(ctrl.ID())
	e.EndBattle("unknown")
	_, ok = e.Battle(ctrl.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, e.Count())
}

func TestEngine_InvalidRoster(t *testing.T) {
	e := battle.NewEngine(testRules(t), nil, nil)
	_, err := e.StartBattle(roster("Ally", "Slam")[:2], roster("Foe", "Peck"))
	assert.Error(t, err)
	assert.Equal(t, 0, e.Count())
}

func TestEngine_BattlesAreIndependent(t *testing.T) {
	var mu sync.Mutex
	seed := uint64(0)
	e := battle.NewEngine(testRules(t), func() dice.Source {
		mu.Lock()
		defer mu.Unlock()
		seed++
		return dice.NewSeededSource(seed)
	}, nil)

	const n = 8
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctrl, err := e.StartBattle(roster("Ally", "Crush"), roster("Foe", "Nudge"))
			if !assert.NoError(t, err) {
				return
			}
			ids[i] = ctrl.ID()
			for ctrl.State() != battle.StateOver {
				if ctrl.State() == battle.StatePreview {
					assert.NoError(t, ctrl.ChooseStarter(0))
					continue
				}
				_, err := ctrl.SubmitMove("Crush")
				if !assert.NoError(t, err) {
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, n, e.Count())
	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate battle id")
		seen[id] = true
		ctrl, ok := e.Battle(id)
		require.True(t, ok)
		winner, over := ctrl.Winner()
		assert.True(t, over)
		assert.Equal(t, battle.SidePlayer, winner)
	}
}
