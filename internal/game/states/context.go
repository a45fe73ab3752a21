package states

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
)

// MatchContext is the per-match session object handed to every phase state.
// It carries the match state the turn controller mutates.
type MatchContext struct {
	// MatchID uniquely identifies this match
	MatchID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// ActiveSide is the side whose turn it is
	ActiveSide core.Side

	// PendingDiceValue is only meaningful between a roll and the end of the turn
	PendingDiceValue int

	// ExtraTurnPending is set by a six and cleared when the bonus is spent or forfeited
	ExtraTurnPending bool

	// Choosable holds the offered tokens; non-empty only in AwaitingChoice
	Choosable []core.TokenID

	// MovingToken is the token walking its steps in AwaitingMoveCompletion
	MovingToken core.TokenID

	// TurnNumber counts turns started, beginning at 1
	TurnNumber int

	// Winner is only meaningful when HasWinner is set
	Winner    core.Side
	HasWinner bool

	// AbandonReason is set when the match ended without a winner
	AbandonReason string

	// StartTime and EndTime bound the match
	StartTime time.Time
	EndTime   time.Time
}

// NewMatchContext creates a new match context
func NewMatchContext(matchID string, firstSide core.Side, logger zerolog.Logger) *MatchContext {
	return &MatchContext{
		MatchID:    matchID,
		Logger:     logger.With().Str("match_id", matchID).Logger(),
		ActiveSide: firstSide,
		TurnNumber: 1,
		StartTime:  time.Now(),
	}
}

// IsChoosable reports whether the token id is among the offered choices
func (mc *MatchContext) IsChoosable(id core.TokenID) bool {
	return lo.Contains(mc.Choosable, id)
}

// IsOver returns true once the match was won or abandoned
func (mc *MatchContext) IsOver() bool {
	return mc.HasWinner || mc.AbandonReason != ""
}

// GetElapsedTime returns the match duration so far, or the final duration
// once the match is over
func (mc *MatchContext) GetElapsedTime() time.Duration {
	if mc.StartTime.IsZero() {
		return 0
	}
	if !mc.EndTime.IsZero() {
		return mc.EndTime.Sub(mc.StartTime)
	}
	return time.Since(mc.StartTime)
}
