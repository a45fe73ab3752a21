package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
)

// WinConditionChecker detects a side that moved every token to the finish
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckWinner checks the players in the given order and returns the first
// side whose tokens are all finished. Callers pass the mover's side first.
func (wc *WinConditionChecker) CheckWinner(players ...*core.Player) (core.Side, bool) {
	wc.logger.Debug().Msg("Checking win conditions")
	for _, p := range players {
		if p == nil {
			continue
		}
		if p.AllFinished() {
			wc.logger.Info().Str("winner", p.Side.String()).Msg("Winner determined")
			return p.Side, true
		}
		wc.logger.Debug().
			Str("side", p.Side.String()).
			Int("finished", p.CountIn(core.StateFinished)).
			Msg("Side has not finished")
	}
	return core.SideA, false
}
