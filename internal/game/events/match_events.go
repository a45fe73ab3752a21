package events

import (
	"time"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
)

// Event type constants
const (
	TypeMatchStarted        = "match.started"
	TypeMatchWon            = "match.won"
	TypeMatchAbandoned      = "match.abandoned"
	TypeSideAnnounced       = "side.announced"
	TypeRollEnabled         = "roll.enabled"
	TypeDiceRolled          = "dice.rolled"
	TypeChoiceOffered       = "choice.offered"
	TypeChoiceCleared       = "choice.cleared"
	TypeTokenEnteredTrack   = "token.entered_track"
	TypeTokenAdvanced       = "token.advanced"
	TypeTokenReturnedToBase = "token.returned_to_base"
	TypeTokenCaptured       = "token.captured"
	TypeTokenFinished       = "token.finished"
	TypeTurnForfeited       = "turn.forfeited"
	TypeTurnPassed          = "turn.passed"
	TypeStateTransition     = "state.transition"
)

// MatchStartedEvent is published once when a match session is created
type MatchStartedEvent struct {
	BaseEvent
	FirstSide    core.Side
	TrackLengths [core.NumSides]int
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(matchID string, first core.Side, trackLengths [core.NumSides]int) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent:    newBase(TypeMatchStarted, matchID),
		FirstSide:    first,
		TrackLengths: trackLengths,
	}
}

// SideAnnouncedEvent tells the turn indicator whose turn it is
type SideAnnouncedEvent struct {
	BaseEvent
	Metadata EventMetadata
}

// NewSideAnnouncedEvent creates a new SideAnnouncedEvent
func NewSideAnnouncedEvent(matchID string, side core.Side, turn int) *SideAnnouncedEvent {
	return &SideAnnouncedEvent{
		BaseEvent: newBase(TypeSideAnnounced, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
	}
}

// RollEnabledEvent drives the roll input affordance
type RollEnabledEvent struct {
	BaseEvent
	Metadata EventMetadata
	Enabled  bool
}

// NewRollEnabledEvent creates a new RollEnabledEvent
func NewRollEnabledEvent(matchID string, side core.Side, turn int, enabled bool) *RollEnabledEvent {
	return &RollEnabledEvent{
		BaseEvent: newBase(TypeRollEnabled, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
		Enabled:   enabled,
	}
}

// DiceRolledEvent is published when a roll result is accepted
type DiceRolledEvent struct {
	BaseEvent
	Metadata EventMetadata
	Value    int
}

// NewDiceRolledEvent creates a new DiceRolledEvent
func NewDiceRolledEvent(matchID string, side core.Side, turn, value int) *DiceRolledEvent {
	return &DiceRolledEvent{
		BaseEvent: newBase(TypeDiceRolled, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
		Value:     value,
	}
}

// ChoiceOfferedEvent lists the tokens the active side may pick from
type ChoiceOfferedEvent struct {
	BaseEvent
	Metadata EventMetadata
	TokenIDs []core.TokenID
}

// NewChoiceOfferedEvent creates a new ChoiceOfferedEvent
func NewChoiceOfferedEvent(matchID string, side core.Side, turn int, tokenIDs []core.TokenID) *ChoiceOfferedEvent {
	return &ChoiceOfferedEvent{
		BaseEvent: newBase(TypeChoiceOffered, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
		TokenIDs:  tokenIDs,
	}
}

// ChoiceClearedEvent is published when a choice was made
type ChoiceClearedEvent struct {
	BaseEvent
	Metadata EventMetadata
}

// NewChoiceClearedEvent creates a new ChoiceClearedEvent
func NewChoiceClearedEvent(matchID string, side core.Side, turn int) *ChoiceClearedEvent {
	return &ChoiceClearedEvent{
		BaseEvent: newBase(TypeChoiceCleared, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
	}
}

// TokenMovement carries the renderer target for token events
type TokenMovement struct {
	Side      core.Side
	TokenID   core.TokenID
	CellIndex int
	Cell      core.CellID
}

// TokenEnteredTrackEvent is published when a token leaves base
type TokenEnteredTrackEvent struct {
	BaseEvent
	Metadata EventMetadata
	TokenMovement
}

// NewTokenEnteredTrackEvent creates a new TokenEnteredTrackEvent
func NewTokenEnteredTrackEvent(matchID string, turn int, move TokenMovement) *TokenEnteredTrackEvent {
	return &TokenEnteredTrackEvent{
		BaseEvent:     newBase(TypeTokenEnteredTrack, matchID),
		Metadata:      EventMetadata{Side: move.Side, Turn: turn},
		TokenMovement: move,
	}
}

// TokenAdvancedEvent is the target waypoint of one unit step
type TokenAdvancedEvent struct {
	BaseEvent
	Metadata EventMetadata
	TokenMovement
	RemainingSteps int
}

// NewTokenAdvancedEvent creates a new TokenAdvancedEvent
func NewTokenAdvancedEvent(matchID string, turn int, move TokenMovement, remaining int) *TokenAdvancedEvent {
	return &TokenAdvancedEvent{
		BaseEvent:      newBase(TypeTokenAdvanced, matchID),
		Metadata:       EventMetadata{Side: move.Side, Turn: turn},
		TokenMovement:  move,
		RemainingSteps: remaining,
	}
}

// TokenReturnedToBaseEvent is published when a token is sent back to base
type TokenReturnedToBaseEvent struct {
	BaseEvent
	Metadata EventMetadata
	Side     core.Side
	TokenID  core.TokenID
}

// NewTokenReturnedToBaseEvent creates a new TokenReturnedToBaseEvent
func NewTokenReturnedToBaseEvent(matchID string, turn int, side core.Side, id core.TokenID) *TokenReturnedToBaseEvent {
	return &TokenReturnedToBaseEvent{
		BaseEvent: newBase(TypeTokenReturnedToBase, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
		Side:      side,
		TokenID:   id,
	}
}

// TokenCapturedEvent describes which token captured which
type TokenCapturedEvent struct {
	BaseEvent
	Metadata       EventMetadata
	CapturerSide   core.Side
	CapturerID     core.TokenID
	CapturedSide   core.Side
	CapturedID     core.TokenID
	CapturedAtCell core.CellID
}

// NewTokenCapturedEvent creates a new TokenCapturedEvent
func NewTokenCapturedEvent(matchID string, turn int, capturer, captured *core.Token, cell core.CellID) *TokenCapturedEvent {
	return &TokenCapturedEvent{
		BaseEvent:      newBase(TypeTokenCaptured, matchID),
		Metadata:       EventMetadata{Side: capturer.Side, Turn: turn},
		CapturerSide:   capturer.Side,
		CapturerID:     capturer.ID,
		CapturedSide:   captured.Side,
		CapturedID:     captured.ID,
		CapturedAtCell: cell,
	}
}

// TokenFinishedEvent is published when a token reaches the finish cell
type TokenFinishedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Side     core.Side
	TokenID  core.TokenID
}

// NewTokenFinishedEvent creates a new TokenFinishedEvent
func NewTokenFinishedEvent(matchID string, turn int, side core.Side, id core.TokenID) *TokenFinishedEvent {
	return &TokenFinishedEvent{
		BaseEvent: newBase(TypeTokenFinished, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
		Side:      side,
		TokenID:   id,
	}
}

// TurnForfeitedEvent is published when a roll left no legal move
type TurnForfeitedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	DiceValue int
}

// NewTurnForfeitedEvent creates a new TurnForfeitedEvent
func NewTurnForfeitedEvent(matchID string, side core.Side, turn, dice int) *TurnForfeitedEvent {
	return &TurnForfeitedEvent{
		BaseEvent: newBase(TypeTurnForfeited, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
		DiceValue: dice,
	}
}

// TurnPassedEvent is published when a turn completes
type TurnPassedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	From      core.Side
	To        core.Side
	ExtraTurn bool
}

// NewTurnPassedEvent creates a new TurnPassedEvent
func NewTurnPassedEvent(matchID string, turn int, from, to core.Side, extra bool) *TurnPassedEvent {
	return &TurnPassedEvent{
		BaseEvent: newBase(TypeTurnPassed, matchID),
		Metadata:  EventMetadata{Side: from, Turn: turn},
		From:      from,
		To:        to,
		ExtraTurn: extra,
	}
}

// MatchWonEvent is the terminal notification of a match
type MatchWonEvent struct {
	BaseEvent
	Metadata EventMetadata
	Winner   core.Side
	Duration time.Duration
}

// NewMatchWonEvent creates a new MatchWonEvent
func NewMatchWonEvent(matchID string, turn int, winner core.Side, duration time.Duration) *MatchWonEvent {
	return &MatchWonEvent{
		BaseEvent: newBase(TypeMatchWon, matchID),
		Metadata:  EventMetadata{Side: winner, Turn: turn},
		Winner:    winner,
		Duration:  duration,
	}
}

// MatchAbandonedEvent is published when a session ends without a winner
type MatchAbandonedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Reason   string
}

// NewMatchAbandonedEvent creates a new MatchAbandonedEvent
func NewMatchAbandonedEvent(matchID string, side core.Side, turn int, reason string) *MatchAbandonedEvent {
	return &MatchAbandonedEvent{
		BaseEvent: newBase(TypeMatchAbandoned, matchID),
		Metadata:  EventMetadata{Side: side, Turn: turn},
		Reason:    reason,
	}
}

// StateTransitionEvent is published when the turn state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(matchID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, matchID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
