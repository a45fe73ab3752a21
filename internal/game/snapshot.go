package game

import (
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/states"
)

// MatchSnapshot is a read-only copy of the match for renderers and tools
type MatchSnapshot struct {
	MatchID          string                              `json:"match_id"`
	Phase            states.TurnPhase                    `json:"phase"`
	ActiveSide       core.Side                           `json:"active_side"`
	PendingDiceValue int                                 `json:"pending_dice_value,omitempty"`
	ExtraTurnPending bool                                `json:"extra_turn_pending"`
	Choosable        []core.TokenID                      `json:"choosable,omitempty"`
	TurnNumber       int                                 `json:"turn"`
	Winner           core.Side                           `json:"winner"`
	HasWinner        bool                                `json:"has_winner"`
	AbandonReason    string                              `json:"abandon_reason,omitempty"`
	Tokens           [core.NumSides][]core.TokenSnapshot `json:"tokens"`
}

// Snapshot copies the observable match state
func (c *Controller) Snapshot() MatchSnapshot {
	mc := c.matchCtx
	snap := MatchSnapshot{
		MatchID:          c.matchID,
		Phase:            c.stateMachine.CurrentPhase(),
		ActiveSide:       mc.ActiveSide,
		PendingDiceValue: mc.PendingDiceValue,
		ExtraTurnPending: mc.ExtraTurnPending,
		Choosable:        append([]core.TokenID(nil), mc.Choosable...),
		TurnNumber:       mc.TurnNumber,
		Winner:           mc.Winner,
		HasWinner:        mc.HasWinner,
		AbandonReason:    mc.AbandonReason,
	}
	for _, side := range core.Sides {
		snap.Tokens[side] = c.players[side].Snapshot()
	}
	return snap
}

// Token returns the snapshot of one token
func (s MatchSnapshot) Token(side core.Side, id core.TokenID) (core.TokenSnapshot, bool) {
	if !side.IsValid() || id < 0 || int(id) >= len(s.Tokens[side]) {
		return core.TokenSnapshot{}, false
	}
	return s.Tokens[side][id], true
}
