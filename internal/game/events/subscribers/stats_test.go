package subscribers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events/subscribers"
)

func TestStatsSubscriber(t *testing.T) {
	bus := events.NewEventBus()
	stats := subscribers.NewStatsSubscriber("stats")
	bus.Subscribe(stats)

	assert.False(t, stats.InterestedIn(events.TypeSideAnnounced))
	assert.True(t, stats.InterestedIn(events.TypeDiceRolled))

	capturer := core.RestoreToken(0, core.SideA, 57, core.StateOnTrack, 10)
	captured := core.RestoreToken(1, core.SideB, 57, core.StateOnTrack, 36)

	bus.Publish(events.NewDiceRolledEvent("m", core.SideA, 1, 6))
	bus.Publish(events.NewTokenEnteredTrackEvent("m", 1, events.TokenMovement{Side: core.SideA}))
	bus.Publish(events.NewTurnPassedEvent("m", 1, core.SideA, core.SideB, false))
	bus.Publish(events.NewDiceRolledEvent("m", core.SideB, 2, 2))
	bus.Publish(events.NewTurnForfeitedEvent("m", core.SideB, 2, 2))
	bus.Publish(events.NewTurnPassedEvent("m", 2, core.SideB, core.SideA, false))
	bus.Publish(events.NewDiceRolledEvent("m", core.SideA, 3, 6))
	for i := 0; i < 6; i++ {
		bus.Publish(events.NewTokenAdvancedEvent("m", 3, events.TokenMovement{Side: core.SideA}, 5-i))
	}
	bus.Publish(events.NewTokenCapturedEvent("m", 3, capturer, captured, 10))
	bus.Publish(events.NewTurnPassedEvent("m", 3, core.SideA, core.SideA, true))
	bus.Publish(events.NewTokenFinishedEvent("m", 4, core.SideA, 0))
	bus.Publish(events.NewMatchWonEvent("m", 4, core.SideA, time.Second))

	got := stats.Stats()
	a, b := got.Sides[core.SideA], got.Sides[core.SideB]

	assert.Equal(t, 2, a.Rolls)
	assert.Equal(t, 2, a.Sixes)
	assert.Equal(t, 1, a.TokensEntered)
	assert.Equal(t, 6, a.StepsMoved)
	assert.Equal(t, 1, a.Captures)
	assert.Equal(t, 1, a.ExtraTurns)
	assert.Equal(t, 1, a.TokensFinished)

	assert.Equal(t, 1, b.Rolls)
	assert.Equal(t, 0, b.Sixes)
	assert.Equal(t, 1, b.Forfeits)
	assert.Equal(t, 1, b.TokensCaptured)

	assert.Equal(t, 4, got.Turns)
	assert.True(t, got.Won)
	assert.Equal(t, core.SideA, got.Winner)
}
