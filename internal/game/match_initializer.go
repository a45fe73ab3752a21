package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/rules"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/states"
)

// matchInitializer handles building a turn controller from a MatchConfig
type matchInitializer struct {
	config MatchConfig
	logger zerolog.Logger
}

// NewController creates a turn controller for one match. The controller is
// idle until Start is called, so subscribers can be attached first.
func NewController(ctx context.Context, cfg MatchConfig) (*Controller, error) {
	mi := &matchInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "TurnController").Logger(),
	}
	return mi.initialize(ctx)
}

func (mi *matchInitializer) initialize(ctx context.Context) (*Controller, error) {
	select {
	case <-ctx.Done():
		mi.logger.Error().Err(ctx.Err()).Msg("Match creation cancelled")
		return nil, ctx.Err()
	default:
	}

	if err := mi.setupDefaults(); err != nil {
		return nil, err
	}

	players, err := mi.initializePlayers()
	if err != nil {
		return nil, fmt.Errorf("player setup failed: %w", err)
	}

	c := mi.createController(players)

	mi.logger.Info().
		Str("match_id", c.matchID).
		Str("first_side", mi.config.FirstSide.String()).
		Int("track_length_a", mi.config.Layout.TrackLength(core.SideA)).
		Int("track_length_b", mi.config.Layout.TrackLength(core.SideB)).
		Dur("forfeit_delay", mi.config.ForfeitDelay).
		Msg("Match created")

	return c, nil
}

// setupDefaults fills in missing configuration and rejects what cannot be defaulted
func (mi *matchInitializer) setupDefaults() error {
	if mi.config.Scheduler == nil {
		return fmt.Errorf("match config: scheduler is required")
	}
	if mi.config.EventBus == nil {
		return fmt.Errorf("match config: event bus is required")
	}
	if !mi.config.FirstSide.IsValid() {
		return fmt.Errorf("match config: invalid first side %s", mi.config.FirstSide)
	}
	if mi.config.MatchID == "" {
		mi.config.MatchID = uuid.NewString()
	}
	if mi.config.Layout == nil {
		mi.logger.Debug().Msg("No layout provided, using the standard ring board")
		layout, err := core.NewRingLayout(core.DefaultRingConfig())
		if err != nil {
			return err
		}
		mi.config.Layout = layout
	}
	if mi.config.ForfeitDelay <= 0 {
		mi.config.ForfeitDelay = DefaultForfeitDelay
	}
	return nil
}

// initializePlayers creates fresh rosters or checks restored ones against the layout
func (mi *matchInitializer) initializePlayers() ([core.NumSides]*core.Player, error) {
	restored := mi.config.Players
	if restored[core.SideA] == nil && restored[core.SideB] == nil {
		return mi.config.Layout.NewPlayers(), nil
	}

	for _, side := range core.Sides {
		p := restored[side]
		if p == nil {
			return restored, fmt.Errorf("restored position is missing side %s", side)
		}
		if p.Side != side {
			return restored, fmt.Errorf("roster for side %s belongs to side %s", side, p.Side)
		}
		want := mi.config.Layout.TrackLength(side)
		for _, t := range p.Tokens {
			if t.TrackLength() != want {
				return restored, fmt.Errorf("%w: token %s has track length %d, layout has %d",
					core.ErrInvalidLayout, t, t.TrackLength(), want)
			}
		}
	}
	return restored, nil
}

func (mi *matchInitializer) createController(players [core.NumSides]*core.Player) *Controller {
	matchCtx := states.NewMatchContext(mi.config.MatchID, mi.config.FirstSide, mi.logger)

	return &Controller{
		matchID:      mi.config.MatchID,
		layout:       mi.config.Layout,
		players:      players,
		matchCtx:     matchCtx,
		stateMachine: states.NewStateMachine(matchCtx, mi.config.EventBus),
		legalMoves:   rules.NewLegalMoveCalculator(mi.logger),
		captures:     rules.NewCaptureResolver(mi.config.Layout, mi.logger),
		winCondition: rules.NewWinConditionChecker(mi.logger),
		publisher:    mi.config.EventBus,
		scheduler:    mi.config.Scheduler,
		forfeitDelay: mi.config.ForfeitDelay,
		logger:       matchCtx.Logger,
	}
}
