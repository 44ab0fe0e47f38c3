// Package battle resolves exchanges between two parties and drives a battle
// from roster preview to a terminal outcome.
package battle

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/monbattle/internal/game/battlelog"
	"github.com/cory-johannsen/monbattle/internal/game/combatant"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/effect"
	"github.com/cory-johannsen/monbattle/internal/game/move"
	"github.com/cory-johannsen/monbattle/internal/game/status"
	"github.com/cory-johannsen/monbattle/internal/observability"
)

// DefaultStartingHP is every combatant's starting and maximum HP.
const DefaultStartingHP = 3

// ErrWrongState is returned when an input is not accepted in the current state.
var ErrWrongState = errors.New("action not allowed in current state")

// State is the controller's position in the battle lifecycle.
type State int

const (
	StatePreview State = iota
	StateBattleActive
	StateSwitchRequired
	StateOver
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StatePreview:
		return "preview"
	case StateBattleActive:
		return "battle_active"
	case StateSwitchRequired:
		return "switch_required"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Rules is the shared, read-only content and tuning for battles.
type Rules struct {
	Catalog    *move.Catalog
	Chart      *move.TypeChart
	Effects    *effect.Registry
	TriggerDie int
	SleepDie   int
	StartingHP int
}

func (r Rules) withDefaults() (Rules, error) {
	if r.Catalog == nil {
		return Rules{}, fmt.Errorf("battle rules: catalog must not be nil")
	}
	if r.Effects == nil {
		r.Effects = effect.DefaultRegistry()
	}
	if r.TriggerDie < 1 {
		r.TriggerDie = effect.DefaultTriggerDie
	}
	if r.SleepDie < 1 {
		r.SleepDie = status.DefaultSleepDie
	}
	if r.StartingHP < 1 {
		r.StartingHP = DefaultStartingHP
	}
	return r, nil
}

// Controller drives one battle: Preview → BattleActive ⇄ SwitchRequired → Over.
// The player chooses moves and switches; the opponent picks moves uniformly at
// random and replaces a fainted combatant with its first standing member.
//
// A Controller is not safe for concurrent use; it advances only when an input
// method is called.
type Controller struct {
	id       string
	player   *combatant.Party
	opponent *combatant.Party
	resolver *Resolver
	log      *battlelog.Log
	logger   *zap.Logger
	state    State
	round    int
	winner   Side
}

// NewController builds a battle between two six-member rosters. src is the
// battle's only source of randomness.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a Controller in StatePreview, or an error for invalid
// rules or rosters. A roster move missing from the catalog yields an error
// wrapping move.ErrUnknownMove.
func NewController(id string, rules Rules, player, opponent []combatant.Record, src dice.Source, logger *zap.Logger) (*Controller, error) {
	rules, err := rules.withDefaults()
	if err != nil {
		return nil, err
	}
	roster := move.Roster{Player: player, Opponent: opponent}
	if err := roster.CheckMoves(rules.Catalog); err != nil {
		return nil, fmt.Errorf("battle rosters: %w", err)
	}
	logger = observability.ForBattle(logger, id)

	pp, err := combatant.NewParty(player, rules.StartingHP)
	if err != nil {
		return nil, fmt.Errorf("player party: %w", err)
	}
	op, err := combatant.NewParty(opponent, rules.StartingHP)
	if err != nil {
		return nil, fmt.Errorf("opponent party: %w", err)
	}

	roller := dice.NewLoggedRoller(src, logger)
	machine := status.NewMachine(rules.Effects, roller, rules.SleepDie)
	trigger := effect.NewTrigger(roller, rules.TriggerDie)
	return &Controller{
		id:       id,
		player:   pp,
		opponent: op,
		resolver: NewResolver(rules.Catalog, rules.Chart, machine, trigger, roller),
		log:      battlelog.New(logger),
		logger:   logger,
		state:    StatePreview,
	}, nil
}

// ID returns the battle identifier.
func (c *Controller) ID() string { return c.id }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Round returns the number of exchanges resolved so far.
func (c *Controller) Round() int { return c.round }

// Log returns the battle's narrative stream.
func (c *Controller) Log() *battlelog.Log { return c.log }

// Party returns the party for side.
func (c *Controller) Party(side Side) *combatant.Party {
	if side == SideOpponent {
		return c.opponent
	}
	return c.player
}

// Preview returns both full rosters.
func (c *Controller) Preview() (player, opponent []combatant.Summary) {
	return c.player.Summaries(), c.opponent.Summaries()
}

// Active returns summaries of both active combatants.
func (c *Controller) Active() (player, opponent combatant.Summary) {
	return c.player.Active().Summary(), c.opponent.Active().Summary()
}

// LegalMoves returns the player's active combatant's legal moves, or nil
// unless a move can be submitted.
func (c *Controller) LegalMoves() []string {
	if c.state != StateBattleActive {
		return nil
	}
	return c.player.Active().LegalMoves()
}

// Winner returns the winning side once the battle is over.
func (c *Controller) Winner() (Side, bool) {
	if c.state != StateOver {
		return SidePlayer, false
	}
	return c.winner, true
}

// ChooseStarter leaves Preview with the player's member i active.
func (c *Controller) ChooseStarter(i int) error {
	if c.state != StatePreview {
		return fmt.Errorf("%w: choose starter in %s", ErrWrongState, c.state)
	}
	if err := c.player.Switch(i); err != nil {
		return err
	}
	c.log.Addf("Go! %s!", c.player.Active().Name)
	c.log.Addf("Foe sends out %s!", c.opponent.Active().Name)
	c.transition(StateBattleActive)
	return nil
}

// SubmitMove resolves one round with the player's chosen move.
//
// Postcondition: On success the state is BattleActive, SwitchRequired, or Over.
// Errors wrap ErrWrongState, ErrIllegalMove, or move.ErrUnknownMove and leave
// the battle unchanged.
func (c *Controller) SubmitMove(name string) (Exchange, error) {
	if c.state != StateBattleActive {
		return Exchange{}, fmt.Errorf("%w: submit move in %s", ErrWrongState, c.state)
	}
	ex, err := c.resolver.ResolveExchange(c.round+1, c.player, c.opponent, name, c.log)
	if err != nil {
		return Exchange{}, err
	}
	c.round++
	for _, u := range ex.Upkeep {
		if u.Err != nil {
			c.logger.Warn("status upkeep failed", zap.String("effect", u.Effect), zap.Error(u.Err))
		}
	}

	if c.opponent.Active().IsFainted() && c.opponent.SwitchToNext() {
		c.log.Addf("Foe sends out %s!", c.opponent.Active().Name)
	}
	if c.CheckDefeat() {
		return ex, nil
	}
	if c.player.Active().IsFainted() {
		c.log.Addf("%s can no longer fight. Choose another combatant.", c.player.Active().Name)
		c.transition(StateSwitchRequired)
	}
	return ex, nil
}

// Switch replaces the player's fainted active combatant with member i.
func (c *Controller) Switch(i int) error {
	if c.state != StateSwitchRequired {
		return fmt.Errorf("%w: switch in %s", ErrWrongState, c.state)
	}
	if err := c.player.Switch(i); err != nil {
		return err
	}
	c.log.Addf("Go! %s!", c.player.Active().Name)
	c.transition(StateBattleActive)
	return nil
}

// CheckDefeat ends the battle if either party has no standing member.
//
// Postcondition: Returns true iff the state is Over.
func (c *Controller) CheckDefeat() bool {
	if c.state == StateOver {
		return true
	}
	playerOut, opponentOut := c.player.Defeated(), c.opponent.Defeated()
	if !playerOut && !opponentOut {
		return false
	}
	c.winner = SidePlayer
	if playerOut {
		c.winner = SideOpponent
	}
	label := "You"
	if c.winner == SideOpponent {
		label = "Foe"
	}
	c.log.Addf("Battle Over! Winner: %s", label)
	c.transition(StateOver)
	return true
}

func (c *Controller) transition(to State) {
	c.logger.Info("battle state transition",
		zap.Stringer("from", c.state),
		zap.Stringer("to", to),
		zap.Int("round", c.round),
	)
	c.state = to
}
