package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())

	// Interested in all events by default
	assert.True(t, logSub.InterestedIn(events.TypeMatchStarted))
	assert.True(t, logSub.InterestedIn(events.TypeSideAnnounced))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	capturer := core.RestoreToken(1, core.SideA, 57, core.StateOnTrack, 30)
	captured := core.RestoreToken(3, core.SideB, 57, core.StateOnTrack, 4)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "DiceRolledEvent",
			event: events.NewDiceRolledEvent("test-match-1", core.SideB, 7, 6),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "B", logLine["side"])
				assert.Equal(t, float64(7), logLine["turn"])
				assert.Equal(t, float64(6), logLine["value"])
			},
		},
		{
			name: "TokenAdvancedEvent",
			event: events.NewTokenAdvancedEvent("test-match-1", 3, events.TokenMovement{
				Side: core.SideA, TokenID: 2, CellIndex: 12, Cell: 12,
			}, 2),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "A", logLine["side"])
				assert.Equal(t, float64(2), logLine["token_id"])
				assert.Equal(t, float64(12), logLine["cell_index"])
				assert.Equal(t, float64(2), logLine["remaining_steps"])
			},
		},
		{
			name:  "TokenCapturedEvent",
			event: events.NewTokenCapturedEvent("test-match-1", 9, capturer, captured, 30),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "A", logLine["capturer_side"])
				assert.Equal(t, float64(1), logLine["capturer_id"])
				assert.Equal(t, "B", logLine["captured_side"])
				assert.Equal(t, float64(3), logLine["captured_id"])
				assert.Equal(t, float64(30), logLine["cell"])
			},
		},
		{
			name:  "ChoiceOfferedEvent",
			event: events.NewChoiceOfferedEvent("test-match-1", core.SideA, 2, []core.TokenID{0, 3}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, []interface{}{float64(0), float64(3)}, logLine["token_ids"])
			},
		},
		{
			name:  "MatchWonEvent",
			event: events.NewMatchWonEvent("test-match-1", 120, core.SideB, 5*time.Minute),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "B", logLine["winner"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			err := json.Unmarshal([]byte(logOutput), &logLine)
			require.NoError(t, err, "Should be able to parse log output as JSON")

			// Common checks
			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Match event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-match-1", logLine["match_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("filtered-logger", logger, zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeMatchStarted, events.TypeMatchWon})

	assert.True(t, logSub.InterestedIn(events.TypeMatchStarted))
	assert.True(t, logSub.InterestedIn(events.TypeMatchWon))
	assert.False(t, logSub.InterestedIn(events.TypeTokenAdvanced))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeTokenAdvanced))
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tc.logLevel)

			logSub := subscribers.NewLoggerSubscriber("level-logger", logger, tc.logLevel)
			logSub.HandleEvent(events.NewSideAnnouncedEvent("match1", core.SideA, 1))

			require.NotZero(t, buf.Len())
			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("dev-logger", logger, zerolog.InfoLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewTokenFinishedEvent("dev-match", 40, core.SideB, 2))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	assert.Contains(t, string(eventDataBytes), events.TypeTokenFinished)
	assert.Contains(t, string(eventDataBytes), "TokenID")
}
