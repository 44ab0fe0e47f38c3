package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/cory-johannsen/monbattle/internal/game/dice"
)

// DefaultMaxRounds bounds an automatic battle.
const DefaultMaxRounds = 1000

// ErrStalled is returned when an automatic battle exceeds its round limit.
var ErrStalled = errors.New("battle did not finish within the round limit")

// Autoplay drives ctrl to StateOver, supplying the player's inputs: the first
// standing member as starter and as replacement after a faint, and a move
// chosen uniformly with src each round. ctx is checked between inputs.
//
// Precondition: src must be non-nil.
// Postcondition: Returns nil iff ctrl.State() == StateOver.
func Autoplay(ctx context.Context, ctrl *Controller, src dice.Source, maxRounds int) error {
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	for ctrl.State() != StateOver {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ctrl.Round() >= maxRounds {
			return fmt.Errorf("%w: %d rounds", ErrStalled, ctrl.Round())
		}
		var err error
		switch ctrl.State() {
		case StatePreview:
			err = ctrl.ChooseStarter(firstStanding(ctrl))
		case StateSwitchRequired:
			err = ctrl.Switch(firstStanding(ctrl))
		case StateBattleActive:
			legal := ctrl.LegalMoves()
			_, err = ctrl.SubmitMove(legal[src.Intn(len(legal))])
		}
		if err != nil {
			return fmt.Errorf("battle %s round %d: %w", ctrl.ID(), ctrl.Round()+1, err)
		}
	}
	return nil
}

func firstStanding(ctrl *Controller) int {
	for i, c := range ctrl.Party(SidePlayer).Members() {
		if !c.IsFainted() {
			return i
		}
	}
	return -1
}
