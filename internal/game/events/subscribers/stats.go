package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
)

// SideStats accumulates per-side counters over a match
type SideStats struct {
	Rolls          int
	Sixes          int
	TokensEntered  int
	StepsMoved     int
	Captures       int
	TokensCaptured int
	TokensFinished int
	Forfeits       int
	ExtraTurns     int
}

// MatchStats is the aggregate the stats subscriber maintains
type MatchStats struct {
	Sides  [core.NumSides]SideStats
	Turns  int
	Winner core.Side
	Won    bool
}

// StatsSubscriber collects match statistics from the event stream.
// Safe to read from another goroutine while events are being handled.
type StatsSubscriber struct {
	id    string
	mu    sync.RWMutex
	stats MatchStats
}

// NewStatsSubscriber creates a new stats subscriber
func NewStatsSubscriber(id string) *StatsSubscriber {
	return &StatsSubscriber{id: id}
}

func (ss *StatsSubscriber) ID() string { return ss.id }

// InterestedIn returns true for the events that carry counters
func (ss *StatsSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeDiceRolled,
		events.TypeTokenEnteredTrack,
		events.TypeTokenAdvanced,
		events.TypeTokenCaptured,
		events.TypeTokenFinished,
		events.TypeTurnForfeited,
		events.TypeTurnPassed,
		events.TypeMatchWon:
		return true
	}
	return false
}

// HandleEvent updates counters
func (ss *StatsSubscriber) HandleEvent(event events.Event) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	switch e := event.(type) {
	case *events.DiceRolledEvent:
		s := ss.side(e.Metadata.Side)
		s.Rolls++
		if e.Value == core.BonusRoll {
			s.Sixes++
		}
	case *events.TokenEnteredTrackEvent:
		ss.side(e.Side).TokensEntered++
	case *events.TokenAdvancedEvent:
		ss.side(e.Side).StepsMoved++
	case *events.TokenCapturedEvent:
		ss.side(e.CapturerSide).Captures++
		ss.side(e.CapturedSide).TokensCaptured++
	case *events.TokenFinishedEvent:
		ss.side(e.Side).TokensFinished++
	case *events.TurnForfeitedEvent:
		ss.side(e.Metadata.Side).Forfeits++
	case *events.TurnPassedEvent:
		ss.stats.Turns++
		if e.ExtraTurn {
			ss.side(e.From).ExtraTurns++
		}
	case *events.MatchWonEvent:
		ss.stats.Turns++
		ss.stats.Winner = e.Winner
		ss.stats.Won = true
	}
}

func (ss *StatsSubscriber) side(side core.Side) *SideStats {
	if !side.IsValid() {
		return &SideStats{}
	}
	return &ss.stats.Sides[side]
}

// Stats returns a copy of the current counters
func (ss *StatsSubscriber) Stats() MatchStats {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.stats
}
