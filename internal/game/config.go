package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
)

// DefaultForfeitDelay lets a wasted roll be seen before the turn passes
const DefaultForfeitDelay = time.Second

// Scheduler runs f once after d. The turn controller is not safe for
// concurrent use, so implementations must deliver f on the goroutine that
// owns the controller (see internal/session).
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// MatchConfig holds everything needed to create a turn controller
type MatchConfig struct {
	// MatchID defaults to a random uuid
	MatchID string

	// Layout defaults to the standard ring board
	Layout *core.Layout

	// Players optionally restores a position; both rosters must be set and
	// match the layout's track lengths
	Players [core.NumSides]*core.Player

	FirstSide    core.Side
	ForfeitDelay time.Duration
	Scheduler    Scheduler
	EventBus     events.Publisher
	Logger       zerolog.Logger
}
