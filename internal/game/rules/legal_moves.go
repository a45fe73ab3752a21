package rules

import (
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/mitchelldurbincs/LudoEngine/internal/dice"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
)

// MoveSet is the outcome of a legal-move query
type MoveSet struct {
	// Tokens that may legally move, in stable roster order
	Tokens []*core.Token
	// Forced is set when a six was rolled with every token in base; the
	// single token must be moved without offering a choice
	Forced bool
}

// Len returns the number of legal moves
func (m MoveSet) Len() int { return len(m.Tokens) }

// Contains reports whether the token is one of the legal moves
func (m MoveSet) Contains(t *core.Token) bool { return lo.Contains(m.Tokens, t) }

// IDs returns the token ids of the move set
func (m MoveSet) IDs() []core.TokenID {
	return lo.Map(m.Tokens, func(t *core.Token, _ int) core.TokenID { return t.ID })
}

// LegalMoveCalculator computes which tokens a side may move for a die value
type LegalMoveCalculator struct {
	logger zerolog.Logger
}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator(logger zerolog.Logger) *LegalMoveCalculator {
	return &LegalMoveCalculator{
		logger: logger.With().Str("component", "LegalMoveCalculator").Logger(),
	}
}

// ForcedMove returns the side's first token when a six was rolled and every
// token is still in base
func (lmc *LegalMoveCalculator) ForcedMove(player *core.Player, roll int) (*core.Token, bool) {
	if roll == core.UnlockRoll && player.AllInBase() {
		return player.First(), true
	}
	return nil, false
}

// LegalMoves returns the tokens the player may move with the given roll
func (lmc *LegalMoveCalculator) LegalMoves(player *core.Player, roll int) MoveSet {
	if !dice.IsValid(roll) {
		lmc.logger.Debug().Int("roll", roll).Msg("Roll outside die range, no legal moves")
		return MoveSet{}
	}

	if forced, ok := lmc.ForcedMove(player, roll); ok {
		lmc.logger.Debug().
			Str("side", player.Side.String()).
			Int("token_id", int(forced.ID)).
			Msg("Six with all tokens in base, forcing first token out")
		return MoveSet{Tokens: []*core.Token{forced}, Forced: true}
	}

	movable := lo.Filter(player.Tokens, func(t *core.Token, _ int) bool {
		return CanMove(t, roll)
	})

	lmc.logger.Debug().
		Str("side", player.Side.String()).
		Int("roll", roll).
		Int("legal_count", len(movable)).
		Msg("Legal moves computed")

	return MoveSet{Tokens: movable}
}

// CanMove reports whether a single token may move with the given roll.
// Leaving base always takes exactly a six; a token on the track may step
// exactly onto the finish cell but never past it.
func CanMove(t *core.Token, roll int) bool {
	switch t.State() {
	case core.StateInBase:
		return roll == core.UnlockRoll
	case core.StateOnTrack:
		return roll <= t.StepsToFinish()
	default:
		return false
	}
}
