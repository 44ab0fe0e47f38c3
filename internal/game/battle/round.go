package battle

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/monbattle/internal/game/battlelog"
	"github.com/cory-johannsen/monbattle/internal/game/combatant"
	"github.com/cory-johannsen/monbattle/internal/game/dice"
	"github.com/cory-johannsen/monbattle/internal/game/effect"
	"github.com/cory-johannsen/monbattle/internal/game/move"
	"github.com/cory-johannsen/monbattle/internal/game/status"
)

// HPCost is the hit points the loser of an exchange loses, regardless of the
// margin.
const HPCost = 1

var (
	// ErrIllegalMove is returned when the chosen move is not one of the
	// active combatant's move slots.
	ErrIllegalMove = errors.New("illegal move")
	// ErrActiveFainted is returned when an exchange is attempted while a
	// side's active combatant has fainted.
	ErrActiveFainted = errors.New("active combatant has fainted")
)

// Side identifies one of the two parties.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

// String returns "player" or "opponent".
func (s Side) String() string {
	if s == SideOpponent {
		return "opponent"
	}
	return "player"
}

// Outcome is the result of one exchange.
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomePlayerWins
	OutcomeOpponentWins
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomePlayerWins:
		return "player wins"
	case OutcomeOpponentWins:
		return "opponent wins"
	default:
		return "tie"
	}
}

// Decide compares two totals: the strictly larger one wins, equal totals tie.
func Decide(playerTotal, opponentTotal int) Outcome {
	switch {
	case playerTotal > opponentTotal:
		return OutcomePlayerWins
	case opponentTotal > playerTotal:
		return OutcomeOpponentWins
	default:
		return OutcomeTie
	}
}

// Exchange records everything that happened in one round.
type Exchange struct {
	Round        int
	PlayerMove   string
	OpponentMove string
	// PlayerEffects are the effects the player's move triggered on the
	// opponent; OpponentEffects the reverse.
	PlayerEffects   []string
	OpponentEffects []string
	Player          Damage
	Opponent        Damage
	Outcome         Outcome
	// Loser names the combatant that lost HP; empty on a tie.
	Loser  string
	Upkeep []status.UpkeepResult
}

// Resolver resolves exchanges between the active combatants of two parties.
type Resolver struct {
	catalog *move.Catalog
	chart   *move.TypeChart
	machine *status.Machine
	trigger *effect.Trigger
	roller  *dice.Roller
}

// NewResolver creates a Resolver.
//
// Precondition: catalog, machine, trigger, and roller must be non-nil; chart may be nil.
func NewResolver(catalog *move.Catalog, chart *move.TypeChart, machine *status.Machine, trigger *effect.Trigger, roller *dice.Roller) *Resolver {
	return &Resolver{catalog: catalog, chart: chart, machine: machine, trigger: trigger, roller: roller}
}

// Machine returns the status machine used for effect application.
func (r *Resolver) Machine() *status.Machine { return r.machine }

// ChooseMove picks uniformly among c's legal moves.
//
// Precondition: c has at least one legal move.
func (r *Resolver) ChooseMove(c *combatant.Combatant) string {
	legal := c.LegalMoves()
	return legal[r.roller.Pick(len(legal))]
}

// ResolveExchange resolves one round: the player's chosen move against a
// uniformly chosen opponent move.
//
// Sequence: ledgers begin (carry-over), status upkeep for both actives, move
// effects rolled and applied to the opposing combatant, status modifiers
// merged, both damage totals computed, and the side with the smaller total
// loses HPCost. Log lines are appended in that order, ending with the player
// line, the opponent line, and the outcome line.
//
// Postcondition: Returns an error wrapping ErrActiveFainted, ErrIllegalMove,
// or move.ErrUnknownMove without touching either party or the log. The
// opponent's move is drawn only after the player's move is validated.
// Otherwise at most one combatant lost exactly HPCost.
func (r *Resolver) ResolveExchange(round int, player, opponent *combatant.Party, playerMove string, log *battlelog.Log) (Exchange, error) {
	pc, oc := player.Active(), opponent.Active()
	if pc.IsFainted() {
		return Exchange{}, fmt.Errorf("%w: %s", ErrActiveFainted, pc.Name)
	}
	if oc.IsFainted() {
		return Exchange{}, fmt.Errorf("%w: %s", ErrActiveFainted, oc.Name)
	}
	if !pc.HasMove(playerMove) {
		return Exchange{}, fmt.Errorf("%w: %s does not know %q", ErrIllegalMove, pc.Name, playerMove)
	}
	pm, err := r.catalog.Get(playerMove)
	if err != nil {
		return Exchange{}, fmt.Errorf("resolving player move: %w", err)
	}
	om, err := r.catalog.Get(r.ChooseMove(oc))
	if err != nil {
		return Exchange{}, fmt.Errorf("resolving opponent move: %w", err)
	}

	ex := Exchange{Round: round, PlayerMove: pm.Name, OpponentMove: om.Name}
	log.Addf("--- Round %d ---", round)

	for _, c := range []*combatant.Combatant{pc, oc} {
		carried := c.Ledger.Begin()
		for _, stat := range sortedStats(carried) {
			log.Addf("%s gains %s %+d from last turn carry-over.", c.Name, stat, carried[stat])
		}
	}
	for _, c := range []*combatant.Combatant{pc, oc} {
		if res := r.machine.Upkeep(c, log); res.Ran || res.Err != nil {
			ex.Upkeep = append(ex.Upkeep, res)
		}
	}

	ex.PlayerEffects = r.applyMoveEffects(pm, pc, oc, log)
	ex.OpponentEffects = r.applyMoveEffects(om, oc, pc, log)

	r.machine.ApplyModifiers(pc, log)
	r.machine.ApplyModifiers(oc, log)

	ex.Player = ResolveDamage(pm, oc.Types, r.chart, pc.Ledger.Current(), r.roller)
	ex.Opponent = ResolveDamage(om, pc.Types, r.chart, oc.Ledger.Current(), r.roller)
	ex.Outcome = Decide(ex.Player.Total, ex.Opponent.Total)

	log.Addf("%s used %s → %s", pc.Name, pm.Name, ex.Player.Breakdown)
	log.Addf("%s used %s → %s", oc.Name, om.Name, ex.Opponent.Breakdown)

	var loser *combatant.Combatant
	switch ex.Outcome {
	case OutcomePlayerWins:
		loser = oc
	case OutcomeOpponentWins:
		loser = pc
	}
	if loser == nil {
		log.Add("It's a tie!")
		return ex, nil
	}
	loser.LoseHP(HPCost)
	ex.Loser = loser.Name
	log.Addf("%s loses %d HP!", loser.Name, HPCost)
	if loser.IsFainted() {
		log.Addf("%s fainted!", loser.Name)
	}
	return ex, nil
}

// applyMoveEffects rolls mv's requirements and applies every triggered
// effect to target, never to the user.
func (r *Resolver) applyMoveEffects(mv move.Definition, user, target *combatant.Combatant, log *battlelog.Log) []string {
	if mv.Effects.Empty() {
		return nil
	}
	triggered := r.trigger.Evaluate(mv.Effects, user.Ledger.Current(), log)
	for _, name := range triggered {
		r.machine.Apply(target, name, mv.Name, log)
	}
	return triggered
}

func sortedStats(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
