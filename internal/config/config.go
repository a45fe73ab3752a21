package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/LudoEngine/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Match      MatchConfig      `mapstructure:"match"`
	Board      BoardConfig      `mapstructure:"board"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// MatchConfig holds turn controller settings
type MatchConfig struct {
	ForfeitDelay time.Duration `mapstructure:"forfeit_delay"`
	FirstSide    string        `mapstructure:"first_side"`
	TimerTick    time.Duration `mapstructure:"timer_tick"`
}

// BoardConfig describes the ring board
type BoardConfig struct {
	RingCells    int                `mapstructure:"ring_cells"`
	HomeCells    int                `mapstructure:"home_cells"`
	StartOffsets StartOffsetsConfig `mapstructure:"start_offsets"`
	SafeCells    []int              `mapstructure:"safe_cells"`
}

// StartOffsetsConfig holds the ring cell each side enters on
type StartOffsetsConfig struct {
	SideA int `mapstructure:"side_a"`
	SideB int `mapstructure:"side_b"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File additionally writes JSON logs to a rotated file when set
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SimulationConfig holds settings for bot-driven matches
type SimulationConfig struct {
	Seed     uint64 `mapstructure:"seed"`
	MaxTurns int    `mapstructure:"max_turns"`
	Matches  int    `mapstructure:"matches"`
	Parallel int    `mapstructure:"parallel"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Match defaults
	v.SetDefault("match.forfeit_delay", time.Second)
	v.SetDefault("match.first_side", "A")
	v.SetDefault("match.timer_tick", 10*time.Millisecond)

	// Board defaults, the standard 52-cell ring
	def := core.DefaultRingConfig()
	v.SetDefault("board.ring_cells", def.RingCells)
	v.SetDefault("board.home_cells", def.HomeCells)
	v.SetDefault("board.start_offsets.side_a", def.StartOffsets[core.SideA])
	v.SetDefault("board.start_offsets.side_b", def.StartOffsets[core.SideB])
	v.SetDefault("board.safe_cells", def.SafeCells)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 7)

	// Simulation defaults
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.max_turns", 2000)
	v.SetDefault("simulation.matches", 1)
	v.SetDefault("simulation.parallel", 4)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/ludo")
	}

	v.SetEnvPrefix("LUDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file falls back to defaults; a broken one does not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set overrides key at runtime. A value that does not decode leaves the
// current config in place.
func Set(key string, value interface{}) error {
	v.Set(key, value)
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to apply %s: %w", key, err)
	}
	*cfg = *next
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A change that fails
// validation keeps the previous config.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*cfg = *next
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Match.ForfeitDelay < 0 {
		return fmt.Errorf("match.forfeit_delay must be non-negative")
	}
	if c.Match.TimerTick <= 0 {
		return fmt.Errorf("match.timer_tick must be positive")
	}
	if _, err := c.FirstSide(); err != nil {
		return fmt.Errorf("match.first_side: %w", err)
	}

	if _, err := c.BuildLayout(); err != nil {
		return fmt.Errorf("board: %w", err)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Logging.File != "" && c.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("logging.max_size_mb must be positive")
	}

	if c.Simulation.MaxTurns <= 0 {
		return fmt.Errorf("simulation.max_turns must be positive")
	}
	if c.Simulation.Matches <= 0 {
		return fmt.Errorf("simulation.matches must be positive")
	}
	if c.Simulation.Parallel <= 0 {
		return fmt.Errorf("simulation.parallel must be positive")
	}

	return nil
}

// FirstSide parses match.first_side
func (c *Config) FirstSide() (core.Side, error) {
	return core.ParseSide(c.Match.FirstSide)
}

// BuildLayout turns the board settings into a layout
func (c *Config) BuildLayout() (*core.Layout, error) {
	return core.NewRingLayout(core.RingConfig{
		RingCells: c.Board.RingCells,
		HomeCells: c.Board.HomeCells,
		StartOffsets: map[core.Side]int{
			core.SideA: c.Board.StartOffsets.SideA,
			core.SideB: c.Board.StartOffsets.SideB,
		},
		SafeCells: c.Board.SafeCells,
	})
}
