package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/LudoEngine/internal/dice"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/rules"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/states"
)

// Controller is the turn controller of one match. It owns both rosters and
// the match state and is the only writer of token state.
//
// Inbound methods never return errors: input that is not valid in the
// current phase is logged at debug level and ignored, leaving all state
// unchanged. Events are published synchronously, so a handler must not call
// back into the controller; queue the reaction instead.
//
// Controller is not safe for concurrent use.
type Controller struct {
	matchID      string
	layout       *core.Layout
	players      [core.NumSides]*core.Player
	matchCtx     *states.MatchContext
	stateMachine *states.StateMachine
	legalMoves   *rules.LegalMoveCalculator
	captures     *rules.CaptureResolver
	winCondition *rules.WinConditionChecker
	publisher    events.Publisher
	scheduler    Scheduler
	forfeitDelay time.Duration
	logger       zerolog.Logger
	started      bool
}

// Start publishes the match start and opens the first turn
func (c *Controller) Start() error {
	if c.started {
		return errors.New("match already started")
	}
	if c.matchCtx.IsOver() {
		return core.ErrMatchOver
	}
	if err := c.stateMachine.Start(); err != nil {
		return fmt.Errorf("state machine start failed: %w", err)
	}
	c.started = true

	var lengths [core.NumSides]int
	for _, side := range core.Sides {
		lengths[side] = c.layout.TrackLength(side)
	}
	c.publisher.Publish(events.NewMatchStartedEvent(c.matchID, c.matchCtx.ActiveSide, lengths))
	c.announceTurn()
	return nil
}

// RollRequested disables rolling until the result arrives
func (c *Controller) RollRequested() {
	if !c.accepting("roll requested", states.PhaseAwaitingRoll) {
		return
	}
	if err := c.transition(states.PhaseRolling, "roll requested"); err != nil {
		return
	}
	c.publishRollEnabled(false)
}

// RollResolved delivers the die value for the active side
func (c *Controller) RollResolved(value int) {
	phase := c.stateMachine.CurrentPhase()
	if !c.started || !phase.AcceptsRoll() {
		c.reject("roll resolved", fmt.Errorf("%w: roll in phase %s", core.ErrInvalidTransition, phase))
		return
	}
	if !dice.IsValid(value) {
		c.reject("roll resolved", fmt.Errorf("%w: %d", core.ErrInvalidDiceValue, value))
		return
	}

	// Resolving validates the pending value, so it is staged first and
	// restored if the phase change does not go through
	prevValue, prevExtra := c.matchCtx.PendingDiceValue, c.matchCtx.ExtraTurnPending
	c.matchCtx.PendingDiceValue = value
	c.matchCtx.ExtraTurnPending = value == core.BonusRoll
	if err := c.transition(states.PhaseResolving, fmt.Sprintf("rolled %d", value)); err != nil {
		c.matchCtx.PendingDiceValue, c.matchCtx.ExtraTurnPending = prevValue, prevExtra
		return
	}
	if phase == states.PhaseAwaitingRoll {
		// result arrived without a request; rolling still has to close
		c.publishRollEnabled(false)
	}
	c.publisher.Publish(events.NewDiceRolledEvent(c.matchID, c.matchCtx.ActiveSide, c.matchCtx.TurnNumber, value))

	c.resolve()
}

// SelectionMade picks one of the offered tokens
func (c *Controller) SelectionMade(id core.TokenID) {
	if !c.accepting("selection made", states.PhaseAwaitingChoice) {
		return
	}
	if !c.matchCtx.IsChoosable(id) {
		c.reject("selection made", fmt.Errorf("%w: token %d not offered", core.ErrInvalidSelection, id))
		return
	}

	player := c.activePlayer()
	player.ClearSelectable()
	c.publisher.Publish(events.NewChoiceClearedEvent(c.matchID, player.Side, c.matchCtx.TurnNumber))
	c.applyMove(player.Token(id))
}

// StepCompleted acknowledges that the moving token reached its current waypoint
func (c *Controller) StepCompleted(id core.TokenID) {
	if !c.accepting("step completed", states.PhaseAwaitingMoveCompletion) {
		return
	}
	if id != c.matchCtx.MovingToken {
		c.reject("step completed", fmt.Errorf("%w: token %d is not moving", core.ErrNotMoving, id))
		return
	}
	c.continueMove(c.activePlayer().Token(id))
}

// Abandon ends the match without a winner
func (c *Controller) Abandon(reason string) {
	if !c.started {
		c.reject("abandon", fmt.Errorf("%w: abandon before start", core.ErrInvalidTransition))
		return
	}
	if c.matchCtx.IsOver() {
		c.reject("abandon", core.ErrMatchOver)
		return
	}
	if reason == "" {
		reason = "abandoned"
	}

	c.matchCtx.AbandonReason = reason
	for _, p := range c.players {
		p.ClearSelectable()
	}
	if err := c.transition(states.PhaseMatchOver, reason); err != nil {
		c.matchCtx.AbandonReason = ""
		return
	}
	c.publishRollEnabled(false)
	c.publisher.Publish(events.NewMatchAbandonedEvent(c.matchID, c.matchCtx.ActiveSide, c.matchCtx.TurnNumber, reason))
}

// MatchID returns the match identifier
func (c *Controller) MatchID() string { return c.matchID }

// Phase returns the current turn phase
func (c *Controller) Phase() states.TurnPhase { return c.stateMachine.CurrentPhase() }

// ActiveSide returns the side whose turn it is
func (c *Controller) ActiveSide() core.Side { return c.matchCtx.ActiveSide }

// Winner returns the winning side once the match was won
func (c *Controller) Winner() (core.Side, bool) {
	return c.matchCtx.Winner, c.matchCtx.HasWinner
}

// IsOver reports whether the match was won or abandoned
func (c *Controller) IsOver() bool { return c.matchCtx.IsOver() }

// History returns the phase transitions so far
func (c *Controller) History() []states.Transition { return c.stateMachine.GetHistory() }

func (c *Controller) activePlayer() *core.Player { return c.players[c.matchCtx.ActiveSide] }

func (c *Controller) opponentPlayer() *core.Player {
	return c.players[c.matchCtx.ActiveSide.Opponent()]
}

func (c *Controller) announceTurn() {
	c.publisher.Publish(events.NewSideAnnouncedEvent(c.matchID, c.matchCtx.ActiveSide, c.matchCtx.TurnNumber))
	c.publishRollEnabled(true)
}

func (c *Controller) publishRollEnabled(enabled bool) {
	c.publisher.Publish(events.NewRollEnabledEvent(c.matchID, c.matchCtx.ActiveSide, c.matchCtx.TurnNumber, enabled))
}

// accepting reports whether the controller is in the given phase, logging a
// rejection otherwise
func (c *Controller) accepting(op string, phase states.TurnPhase) bool {
	current := c.stateMachine.CurrentPhase()
	if c.started && current == phase {
		return true
	}
	c.reject(op, fmt.Errorf("%w: %s in phase %s", core.ErrInvalidTransition, op, current))
	return false
}

func (c *Controller) reject(op string, err error) {
	c.logger.Debug().
		Err(err).
		Str("op", op).
		Str("phase", c.stateMachine.CurrentPhase().String()).
		Str("side", c.matchCtx.ActiveSide.String()).
		Msg("Input ignored")
}

// transition wraps the state machine; a failure here is a controller bug
// and is logged loudly
func (c *Controller) transition(phase states.TurnPhase, reason string) error {
	if err := c.stateMachine.TransitionTo(phase, reason); err != nil {
		c.logger.Error().
			Err(err).
			Str("to_phase", phase.String()).
			Str("reason", reason).
			Msg("Phase transition failed")
		return err
	}
	return nil
}
