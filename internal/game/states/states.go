package states

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/LudoEngine/internal/dice"
)

// AwaitingRollState waits for the active side to roll
type AwaitingRollState struct{}

func NewAwaitingRollState() State {
	return &AwaitingRollState{}
}

func (s *AwaitingRollState) Phase() TurnPhase {
	return PhaseAwaitingRoll
}

func (s *AwaitingRollState) Enter(ctx *MatchContext) error {
	ctx.PendingDiceValue = 0
	ctx.Logger.Debug().
		Str("side", ctx.ActiveSide.String()).
		Int("turn", ctx.TurnNumber).
		Msg("Awaiting roll")
	return nil
}

func (s *AwaitingRollState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *AwaitingRollState) Validate(ctx *MatchContext) error {
	if ctx.IsOver() {
		return errors.New("match is over, no more rolls")
	}
	if !ctx.ActiveSide.IsValid() {
		return fmt.Errorf("invalid active side %s", ctx.ActiveSide)
	}
	return nil
}

// RollingState covers the interval between a roll request and its result
type RollingState struct{}

func NewRollingState() State {
	return &RollingState{}
}

func (s *RollingState) Phase() TurnPhase {
	return PhaseRolling
}

func (s *RollingState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().Str("side", ctx.ActiveSide.String()).Msg("Roll requested")
	return nil
}

func (s *RollingState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *RollingState) Validate(ctx *MatchContext) error {
	return nil
}

// ResolvingState runs the legal-move calculation for the pending roll
type ResolvingState struct{}

func NewResolvingState() State {
	return &ResolvingState{}
}

func (s *ResolvingState) Phase() TurnPhase {
	return PhaseResolving
}

func (s *ResolvingState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().
		Str("side", ctx.ActiveSide.String()).
		Int("dice", ctx.PendingDiceValue).
		Bool("extra_turn_pending", ctx.ExtraTurnPending).
		Msg("Resolving roll")
	return nil
}

func (s *ResolvingState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *ResolvingState) Validate(ctx *MatchContext) error {
	if !dice.IsValid(ctx.PendingDiceValue) {
		return fmt.Errorf("pending dice value %d outside %d..%d", ctx.PendingDiceValue, dice.MinFace, dice.MaxFace)
	}
	return nil
}

// AwaitingChoiceState waits for a selection among several legal moves
type AwaitingChoiceState struct{}

func NewAwaitingChoiceState() State {
	return &AwaitingChoiceState{}
}

func (s *AwaitingChoiceState) Phase() TurnPhase {
	return PhaseAwaitingChoice
}

func (s *AwaitingChoiceState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().
		Str("side", ctx.ActiveSide.String()).
		Int("choices", len(ctx.Choosable)).
		Msg("Awaiting token choice")
	return nil
}

// Exit drops the offered choices; they are never valid outside this phase
func (s *AwaitingChoiceState) Exit(ctx *MatchContext) error {
	ctx.Choosable = nil
	return nil
}

func (s *AwaitingChoiceState) Validate(ctx *MatchContext) error {
	if len(ctx.Choosable) < 2 {
		return fmt.Errorf("choice needs at least 2 tokens, got %d", len(ctx.Choosable))
	}
	return nil
}

// AwaitingMoveCompletionState waits for step acknowledgements
type AwaitingMoveCompletionState struct{}

func NewAwaitingMoveCompletionState() State {
	return &AwaitingMoveCompletionState{}
}

func (s *AwaitingMoveCompletionState) Phase() TurnPhase {
	return PhaseAwaitingMoveCompletion
}

func (s *AwaitingMoveCompletionState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().
		Str("side", ctx.ActiveSide.String()).
		Int("token_id", int(ctx.MovingToken)).
		Int("steps", ctx.PendingDiceValue).
		Msg("Token moving")
	return nil
}

func (s *AwaitingMoveCompletionState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *AwaitingMoveCompletionState) Validate(ctx *MatchContext) error {
	return nil
}

// AwaitingForfeitState holds the turn while the forfeit delay runs
type AwaitingForfeitState struct{}

func NewAwaitingForfeitState() State {
	return &AwaitingForfeitState{}
}

func (s *AwaitingForfeitState) Phase() TurnPhase {
	return PhaseAwaitingForfeit
}

func (s *AwaitingForfeitState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().
		Str("side", ctx.ActiveSide.String()).
		Int("dice", ctx.PendingDiceValue).
		Msg("No legal move, turn forfeited")
	return nil
}

func (s *AwaitingForfeitState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *AwaitingForfeitState) Validate(ctx *MatchContext) error {
	if ctx.ExtraTurnPending {
		return errors.New("forfeited turn cannot keep a bonus roll")
	}
	return nil
}

// TurnCompleteState decides who rolls next
type TurnCompleteState struct{}

func NewTurnCompleteState() State {
	return &TurnCompleteState{}
}

func (s *TurnCompleteState) Phase() TurnPhase {
	return PhaseTurnComplete
}

func (s *TurnCompleteState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().
		Str("side", ctx.ActiveSide.String()).
		Bool("extra_turn_pending", ctx.ExtraTurnPending).
		Msg("Turn complete")
	return nil
}

// Exit hands the turn over: the same side keeps it when a bonus roll is
// pending, which consumes the bonus
func (s *TurnCompleteState) Exit(ctx *MatchContext) error {
	if ctx.IsOver() {
		return nil
	}
	if ctx.ExtraTurnPending {
		ctx.ExtraTurnPending = false
	} else {
		ctx.ActiveSide = ctx.ActiveSide.Opponent()
	}
	ctx.PendingDiceValue = 0
	ctx.TurnNumber++
	return nil
}

func (s *TurnCompleteState) Validate(ctx *MatchContext) error {
	return nil
}

// MatchOverState is terminal
type MatchOverState struct{}

func NewMatchOverState() State {
	return &MatchOverState{}
}

func (s *MatchOverState) Phase() TurnPhase {
	return PhaseMatchOver
}

func (s *MatchOverState) Enter(ctx *MatchContext) error {
	ctx.EndTime = time.Now()
	ctx.Choosable = nil
	ctx.ExtraTurnPending = false

	if ctx.HasWinner {
		ctx.Logger.Info().
			Str("winner", ctx.Winner.String()).
			Int("turns", ctx.TurnNumber).
			Dur("match_duration", ctx.GetElapsedTime()).
			Msg("Match won")
		return nil
	}
	ctx.Logger.Info().
		Str("reason", ctx.AbandonReason).
		Dur("match_duration", ctx.GetElapsedTime()).
		Msg("Match abandoned")
	return nil
}

func (s *MatchOverState) Exit(ctx *MatchContext) error {
	return nil
}

func (s *MatchOverState) Validate(ctx *MatchContext) error {
	if !ctx.IsOver() {
		return errors.New("match over requires a winner or an abandon reason")
	}
	return nil
}
