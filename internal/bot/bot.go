// Package bot plays a match by reacting to the controller's events the way
// the dice, board and token components would.
package bot

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/LudoEngine/internal/dice"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
)

// Inputs is the inbound surface of a match. Calls must be queued, not run
// inline, because the bot reacts from inside event delivery.
type Inputs interface {
	RollRequested()
	RollResolved(value int)
	SelectionMade(id core.TokenID)
	StepCompleted(id core.TokenID)
}

// Strategy picks one of the offered tokens
type Strategy func(offered []core.TokenID) core.TokenID

// FirstChoice always picks the lowest offered id
func FirstChoice(offered []core.TokenID) core.TokenID {
	return lo.Min(offered)
}

// RandomChoice picks uniformly from the offered tokens
func RandomChoice(rng *rand.Rand) Strategy {
	return func(offered []core.TokenID) core.TokenID {
		return offered[rng.Intn(len(offered))]
	}
}

// Config configures a Bot
type Config struct {
	ID       string
	Sides    []core.Side // defaults to both sides
	Roller   dice.Roller
	Strategy Strategy // defaults to RandomChoice seeded from the clock
	Logger   zerolog.Logger
}

// Bot is an events.Subscriber that drives the sides it controls
type Bot struct {
	id       string
	inputs   Inputs
	sides    map[core.Side]bool
	roller   dice.Roller
	strategy Strategy
	logger   zerolog.Logger
}

// New creates a bot that sends its input to inputs
func New(inputs Inputs, cfg Config) *Bot {
	if cfg.ID == "" {
		cfg.ID = "bot"
	}
	if len(cfg.Sides) == 0 {
		cfg.Sides = core.Sides[:]
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.NewRandomRoller(0)
	}
	if cfg.Strategy == nil {
		cfg.Strategy = RandomChoice(rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
	}

	return &Bot{
		id:       cfg.ID,
		inputs:   inputs,
		sides:    lo.SliceToMap(cfg.Sides, func(s core.Side) (core.Side, bool) { return s, true }),
		roller:   cfg.Roller,
		strategy: cfg.Strategy,
		logger:   cfg.Logger.With().Str("component", "Bot").Str("bot_id", cfg.ID).Logger(),
	}
}

func (b *Bot) ID() string { return b.id }

// InterestedIn returns true for the events that ask for input
func (b *Bot) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeRollEnabled, events.TypeChoiceOffered, events.TypeTokenAdvanced:
		return true
	}
	return false
}

// HandleEvent answers rolls, choices and step waypoints for controlled sides
func (b *Bot) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.RollEnabledEvent:
		if !e.Enabled || !b.sides[e.Metadata.Side] {
			return
		}
		value := b.roller.Roll()
		b.logger.Debug().
			Str("side", e.Metadata.Side.String()).
			Int("turn", e.Metadata.Turn).
			Int("value", value).
			Msg("Rolling")
		b.inputs.RollRequested()
		b.inputs.RollResolved(value)

	case *events.ChoiceOfferedEvent:
		if !b.sides[e.Metadata.Side] || len(e.TokenIDs) == 0 {
			return
		}
		id := b.strategy(e.TokenIDs)
		b.logger.Debug().
			Str("side", e.Metadata.Side.String()).
			Int("token_id", int(id)).
			Msg("Choosing token")
		b.inputs.SelectionMade(id)

	case *events.TokenAdvancedEvent:
		if !b.sides[e.Side] {
			return
		}
		b.inputs.StepCompleted(e.TokenID)
	}
}
