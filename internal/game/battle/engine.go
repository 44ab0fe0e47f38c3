package battle

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/combatant"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// SourceFactory returns a fresh randomness source for a new battle.
type SourceFactory func() dice.Source

// Engine tracks every running battle by ID. Battles share the read-only rules
// but nothing else. Engine methods are safe for concurrent use; each returned
// Controller must still be driven by one goroutine at a time.
type Engine struct {
	mu        sync.RWMutex
	battles   map[string]*Controller
	rules     Rules
	newSource SourceFactory
	logger    *zap.Logger
}

// NewEngine creates an empty Engine. A nil newSource uses dice.NewCryptoSource.
func NewEngine(rules Rules, newSource SourceFactory, logger *zap.Logger) *Engine {
	if newSource == nil {
		newSource = dice.NewCryptoSource
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		battles:   make(map[string]*Controller),
		rules:     rules,
		newSource: newSource,
		logger:    logger,
	}
}

// StartBattle creates a battle under a fresh UUID.
//
// Postcondition: Returns a Controller in StatePreview retrievable via Battle,
// or an error for invalid rosters.
func (e *Engine) StartBattle(player, opponent []combatant.Record) (*Controller, error) {
	id := uuid.New().String()
	ctrl, err := NewController(id, e.rules, player, opponent, e.newSource(), e.logger)
	if err != nil {
		return nil, fmt.Errorf("starting battle: %w", err)
	}
	e.mu.Lock()
	e.battles[id] = ctrl
	e.mu.Unlock()
	e.logger.Info("battle started", zap.String("battle_id", id))
	return ctrl, nil
}

// Battle returns the battle with id.
func (e *Engine) Battle(id string) (*Controller, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.battles[id]
	return c, ok
}

// EndBattle forgets the battle with id. Unknown IDs are ignored.
func (e *Engine) EndBattle(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.battles[id]; ok {
		delete(e.battles, id)
		e.logger.Info("battle ended", zap.String("battle_id", id))
	}
}

// Count returns the number of tracked battles.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.battles)
}
