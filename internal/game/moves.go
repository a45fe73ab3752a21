package game

import (
	"fmt"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/rules"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/states"
)

// resolve branches on the number of legal moves for the pending roll
func (c *Controller) resolve() {
	player := c.activePlayer()
	moves := c.legalMoves.LegalMoves(player, c.matchCtx.PendingDiceValue)

	switch {
	case moves.Forced || moves.Len() == 1:
		c.applyMove(moves.Tokens[0])
	case moves.Len() == 0:
		c.forfeit()
	default:
		c.offerChoice(player, moves)
	}
}

func (c *Controller) offerChoice(player *core.Player, moves rules.MoveSet) {
	c.matchCtx.Choosable = moves.IDs()
	if err := c.transition(states.PhaseAwaitingChoice, fmt.Sprintf("%d legal moves", moves.Len())); err != nil {
		return
	}
	for _, t := range moves.Tokens {
		t.SetSelectable(true)
	}
	c.publisher.Publish(events.NewChoiceOfferedEvent(c.matchID, player.Side, c.matchCtx.TurnNumber, moves.IDs()))
}

// applyMove starts moving the token by the pending roll. Leaving base
// spends the six, so the bonus roll is lost, and completes at once.
func (c *Controller) applyMove(t *core.Token) {
	turn := c.matchCtx.TurnNumber

	switch t.State() {
	case core.StateInBase:
		c.matchCtx.ExtraTurnPending = false
		if err := t.EnterTrack(); err != nil {
			c.reject("enter track", err)
			return
		}
		c.publisher.Publish(events.NewTokenEnteredTrackEvent(c.matchID, turn, c.movement(t)))
		c.finishMove(t)

	case core.StateOnTrack:
		if err := t.Advance(c.matchCtx.PendingDiceValue); err != nil {
			c.reject("advance", err)
			return
		}
		c.matchCtx.MovingToken = t.ID
		if err := c.transition(states.PhaseAwaitingMoveCompletion, fmt.Sprintf("token %d moving", t.ID)); err != nil {
			return
		}
		c.publisher.Publish(events.NewTokenAdvancedEvent(c.matchID, turn, c.movement(t), t.RemainingSteps()))

	default:
		c.reject("apply move", fmt.Errorf("%w: token %s cannot move", core.ErrInvalidTransition, t))
	}
}

// continueMove takes the next unit step or, after the last one, runs the
// post-move pipeline
func (c *Controller) continueMove(t *core.Token) {
	done, err := t.CompleteStep()
	if err != nil {
		c.reject("step completed", err)
		return
	}
	if !done {
		c.publisher.Publish(events.NewTokenAdvancedEvent(c.matchID, c.matchCtx.TurnNumber, c.movement(t), t.RemainingSteps()))
		return
	}
	if t.State() == core.StateFinished {
		c.publisher.Publish(events.NewTokenFinishedEvent(c.matchID, c.matchCtx.TurnNumber, t.Side, t.ID))
	}
	c.finishMove(t)
}

// finishMove runs capture, then the win check, then ends the turn
func (c *Controller) finishMove(t *core.Token) {
	turn := c.matchCtx.TurnNumber

	if capture, ok := c.captures.Resolve(t, c.opponentPlayer()); ok {
		c.publisher.Publish(events.NewTokenReturnedToBaseEvent(c.matchID, turn, capture.Captured.Side, capture.Captured.ID))
		c.publisher.Publish(events.NewTokenCapturedEvent(c.matchID, turn, capture.Capturer, capture.Captured, capture.Cell))
	}

	if winner, won := c.winCondition.CheckWinner(c.activePlayer(), c.opponentPlayer()); won {
		c.declareWinner(winner)
		return
	}
	c.endTurn(fmt.Sprintf("token %d moved", t.ID))
}

func (c *Controller) declareWinner(winner core.Side) {
	c.matchCtx.Winner = winner
	c.matchCtx.HasWinner = true
	if err := c.transition(states.PhaseMatchOver, fmt.Sprintf("side %s won", winner)); err != nil {
		return
	}
	c.publishRollEnabled(false)
	c.publisher.Publish(events.NewMatchWonEvent(c.matchID, c.matchCtx.TurnNumber, winner, c.matchCtx.GetElapsedTime()))
}

// forfeit waits out the delay before passing the turn. A wasted six loses
// its bonus too. The scheduled event is never cancelled; it is ignored if
// the match moved on in the meantime.
func (c *Controller) forfeit() {
	c.matchCtx.ExtraTurnPending = false
	if err := c.transition(states.PhaseAwaitingForfeit, "no legal move"); err != nil {
		return
	}
	turn := c.matchCtx.TurnNumber
	c.publisher.Publish(events.NewTurnForfeitedEvent(c.matchID, c.matchCtx.ActiveSide, turn, c.matchCtx.PendingDiceValue))

	c.scheduler.AfterFunc(c.forfeitDelay, func() {
		c.forfeitElapsed(turn)
	})
}

func (c *Controller) forfeitElapsed(turn int) {
	if c.stateMachine.CurrentPhase() != states.PhaseAwaitingForfeit || c.matchCtx.TurnNumber != turn {
		c.logger.Debug().Int("turn", turn).Msg("Stale forfeit timer ignored")
		return
	}
	c.endTurn("forfeit delay elapsed")
}

// endTurn passes through TurnComplete, which hands the turn to the next
// side, and opens the next turn
func (c *Controller) endTurn(reason string) {
	from := c.matchCtx.ActiveSide
	extra := c.matchCtx.ExtraTurnPending
	turn := c.matchCtx.TurnNumber

	if err := c.transition(states.PhaseTurnComplete, reason); err != nil {
		return
	}
	if err := c.transition(states.PhaseAwaitingRoll, "next turn"); err != nil {
		return
	}
	c.publisher.Publish(events.NewTurnPassedEvent(c.matchID, turn, from, c.matchCtx.ActiveSide, extra))
	c.announceTurn()
}

func (c *Controller) movement(t *core.Token) events.TokenMovement {
	cell, _ := c.layout.Cell(t.Side, t.TrackIndex())
	return events.TokenMovement{
		Side:      t.Side,
		TokenID:   t.ID,
		CellIndex: t.TrackIndex(),
		Cell:      cell,
	}
}
