package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mitchelldurbincs/LudoEngine/internal/bot"
	"github.com/mitchelldurbincs/LudoEngine/internal/config"
	"github.com/mitchelldurbincs/LudoEngine/internal/dice"
	"github.com/mitchelldurbincs/LudoEngine/internal/game"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events"
	"github.com/mitchelldurbincs/LudoEngine/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/LudoEngine/internal/session"
	"github.com/mitchelldurbincs/LudoEngine/internal/timer"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Merge config.<env>.yaml over the config file")
	seed := flag.Int64("seed", -1, "Dice seed, 0 picks one from the clock (-1 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Abandon a match after this many turns (-1 to use config default)")
	matches := flag.Int("matches", -1, "Number of matches to play (-1 to use config default)")
	parallel := flag.Int("parallel", -1, "Matches played at once (-1 to use config default)")
	firstSide := flag.String("first-side", "", "Side that moves first, A or B (empty to use config default)")
	forfeitDelay := flag.Duration("forfeit-delay", -1, "Pause after a roll without moves (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	logEvents := flag.Bool("log-events", false, "Log every match event")
	watch := flag.Bool("watch", false, "Reload the log level when the config file changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Flags override config; the merged result is validated again
	if *seed != -1 {
		cfg.Simulation.Seed = uint64(*seed)
	}
	if *maxTurns != -1 {
		cfg.Simulation.MaxTurns = *maxTurns
	}
	if *matches != -1 {
		cfg.Simulation.Matches = *matches
	}
	if *parallel != -1 {
		cfg.Simulation.Parallel = *parallel
	}
	if *firstSide != "" {
		cfg.Match.FirstSide = *firstSide
	}
	if *forfeitDelay != -1 {
		cfg.Match.ForfeitDelay = *forfeitDelay
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid flags")
	}

	closeLog := setupLogging(cfg.Logging)
	defer closeLog()

	if *watch {
		config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			zerolog.SetGlobalLevel(parseLevel(c.Logging.Level))
			log.Info().Str("log_level", c.Logging.Level).Msg("Config reloaded")
		})
	}

	side, err := cfg.FirstSide()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid first side")
	}
	layout, err := cfg.BuildLayout()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid board")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runBatch(ctx, simulation{
		layout:       layout,
		firstSide:    side,
		forfeitDelay: cfg.Match.ForfeitDelay,
		timerTick:    cfg.Match.TimerTick,
		seed:         cfg.Simulation.Seed,
		maxTurns:     cfg.Simulation.MaxTurns,
		logEvents:    *logEvents,
	}, cfg.Simulation.Matches, cfg.Simulation.Parallel)
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	if len(results) == 1 {
		printMatch(os.Stdout, results[0])
	} else {
		printBatch(os.Stdout, results)
	}
}

type simulation struct {
	layout       *core.Layout
	firstSide    core.Side
	forfeitDelay time.Duration
	timerTick    time.Duration
	seed         uint64
	maxTurns     int
	logEvents    bool
}

// runBatch plays matches bot-vs-bot, at most parallel at a time, sharing one
// timing wheel. Match i rolls with seed+i.
func runBatch(ctx context.Context, sim simulation, matches, parallel int) ([]subscribers.MatchStats, error) {
	switch {
	case matches < 1:
		return nil, fmt.Errorf("matches must be positive, got %d", matches)
	case parallel < 1:
		return nil, fmt.Errorf("parallel must be positive, got %d", parallel)
	case sim.maxTurns < 1:
		return nil, fmt.Errorf("max turns must be positive, got %d", sim.maxTurns)
	}
	if sim.seed == 0 {
		sim.seed = uint64(time.Now().UnixNano())
	}
	wheel := timer.NewWheelScheduler(timer.WithTick(sim.timerTick), timer.WithLogger(log.Logger))
	defer wheel.Stop()

	log.Info().
		Uint64("seed", sim.seed).
		Int("matches", matches).
		Int("parallel", parallel).
		Str("first_side", sim.firstSide.String()).
		Int("max_turns", sim.maxTurns).
		Dur("forfeit_delay", sim.forfeitDelay).
		Msg("Starting simulation")

	results := make([]subscribers.MatchStats, matches)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < matches; i++ {
		i := i
		g.Go(func() error {
			stats, err := playMatch(gctx, sim, wheel, sim.seed+uint64(i))
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playMatch runs one match until it is won, the turn limit is hit or ctx is
// cancelled
func playMatch(ctx context.Context, sim simulation, sched game.Scheduler, seed uint64) (subscribers.MatchStats, error) {
	bus := events.NewEventBusWithLogger(log.Logger)
	s, err := session.New(ctx, bus, game.MatchConfig{
		Layout:       sim.layout,
		FirstSide:    sim.firstSide,
		ForfeitDelay: sim.forfeitDelay,
		Scheduler:    sched,
		Logger:       log.Logger,
	})
	if err != nil {
		return subscribers.MatchStats{}, err
	}
	defer s.Close()

	stats := subscribers.NewStatsSubscriber("stats")
	s.Subscribe(stats)
	if sim.logEvents {
		s.Subscribe(subscribers.NewLoggerSubscriber("event_logger", log.Logger, zerolog.InfoLevel))
	}

	roller := dice.NewRandomRoller(seed)
	s.Subscribe(bot.New(s, bot.Config{
		ID:       "sim_bot",
		Roller:   roller,
		Strategy: bot.RandomChoice(rand.New(rand.NewSource(seed + 1))),
		Logger:   log.Logger,
	}))

	s.SubscribeFunc(events.TypeTurnPassed, func(e events.Event) {
		if e.(*events.TurnPassedEvent).Metadata.Turn >= sim.maxTurns {
			s.Abandon("turn limit reached")
		}
	})

	if err := s.Start(); err != nil {
		return subscribers.MatchStats{}, err
	}

	select {
	case <-s.Over():
	case <-ctx.Done():
		log.Info().Str("match_id", s.MatchID()).Msg("Interrupted")
	}
	return stats.Stats(), nil
}

func printMatch(w io.Writer, stats subscribers.MatchStats) {
	if stats.Won {
		fmt.Fprintf(w, "Side %s wins after %d turns\n", stats.Winner, stats.Turns)
	} else {
		fmt.Fprintf(w, "No winner after %d turns\n", stats.Turns)
	}

	fmt.Fprintf(w, "%-6s %6s %6s %8s %6s %9s %6s %9s %9s %6s\n",
		"side", "rolls", "sixes", "entered", "steps", "captures", "lost", "finished", "forfeits", "extra")
	for _, side := range core.Sides {
		s := stats.Sides[side]
		fmt.Fprintf(w, "%-6s %6d %6d %8d %6d %9d %6d %9d %9d %6d\n",
			side, s.Rolls, s.Sixes, s.TokensEntered, s.StepsMoved, s.Captures,
			s.TokensCaptured, s.TokensFinished, s.Forfeits, s.ExtraTurns)
	}
}

func printBatch(w io.Writer, results []subscribers.MatchStats) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no matches played")
		return
	}
	var wins [core.NumSides]int
	unfinished, turns := 0, 0
	for _, r := range results {
		turns += r.Turns
		if !r.Won {
			unfinished++
			continue
		}
		wins[r.Winner]++
	}

	fmt.Fprintf(w, "%d matches, %.1f turns on average\n", len(results), float64(turns)/float64(len(results)))
	for _, side := range core.Sides {
		fmt.Fprintf(w, "Side %s won %d\n", side, wins[side])
	}
	fmt.Fprintf(w, "Unfinished %d\n", unfinished)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// setupLogging configures the global logger; the returned func closes the
// log file, if any
func setupLogging(cfg config.LoggingConfig) func() {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	if strings.ToLower(cfg.Format) == "json" {
		out = os.Stderr
	}

	if cfg.File == "" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return func() {}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
		Compress:   true,
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(out, file)).With().Timestamp().Logger()
	return func() { _ = file.Close() }
}
