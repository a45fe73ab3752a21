package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Str("first_side", e.FirstSide.String()).
			Ints("track_lengths", e.TrackLengths[:])

	case *events.SideAnnouncedEvent:
		logEvent.
			Str("side", e.Metadata.Side.String()).
			Int("turn", e.Metadata.Turn)

	case *events.RollEnabledEvent:
		logEvent.
			Str("side", e.Metadata.Side.String()).
			Bool("enabled", e.Enabled)

	case *events.DiceRolledEvent:
		logEvent.
			Str("side", e.Metadata.Side.String()).
			Int("turn", e.Metadata.Turn).
			Int("value", e.Value)

	case *events.ChoiceOfferedEvent:
		ids := make([]int, len(e.TokenIDs))
		for i, id := range e.TokenIDs {
			ids[i] = int(id)
		}
		logEvent.
			Str("side", e.Metadata.Side.String()).
			Ints("token_ids", ids)

	case *events.TokenEnteredTrackEvent:
		logEvent.
			Str("side", e.Side.String()).
			Int("token_id", int(e.TokenID)).
			Int("cell_index", e.CellIndex).
			Int("cell", int(e.Cell))

	case *events.TokenAdvancedEvent:
		logEvent.
			Str("side", e.Side.String()).
			Int("token_id", int(e.TokenID)).
			Int("cell_index", e.CellIndex).
			Int("cell", int(e.Cell)).
			Int("remaining_steps", e.RemainingSteps)

	case *events.TokenReturnedToBaseEvent:
		logEvent.
			Str("side", e.Side.String()).
			Int("token_id", int(e.TokenID))

	case *events.TokenCapturedEvent:
		logEvent.
			Str("capturer_side", e.CapturerSide.String()).
			Int("capturer_id", int(e.CapturerID)).
			Str("captured_side", e.CapturedSide.String()).
			Int("captured_id", int(e.CapturedID)).
			Int("cell", int(e.CapturedAtCell))

	case *events.TokenFinishedEvent:
		logEvent.
			Str("side", e.Side.String()).
			Int("token_id", int(e.TokenID))

	case *events.TurnForfeitedEvent:
		logEvent.
			Str("side", e.Metadata.Side.String()).
			Int("dice_value", e.DiceValue)

	case *events.TurnPassedEvent:
		logEvent.
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Bool("extra_turn", e.ExtraTurn)

	case *events.MatchWonEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Int("turn", e.Metadata.Turn).
			Dur("duration", e.Duration)

	case *events.MatchAbandonedEvent:
		logEvent.Str("reason", e.Reason)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Match event")
}
