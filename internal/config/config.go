// Package config loads application settings from the environment.
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/wrenfold/loresmith/internal/dice"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	// CampaignFolder holds the numbered campaign documents.
	CampaignFolder string `env:"LORESMITH_CAMPAIGN" envDefault:"campaign"`

	// SRDFolder optionally layers reference documents under the campaign;
	// it folds first so campaign files overwrite it name by name.
	SRDFolder string `env:"LORESMITH_SRD"`

	// DateFormat names the calendar format the date command renders with.
	DateFormat string `env:"LORESMITH_DATE_FORMAT" envDefault:"default"`

	// Seed fixes the dice roller for reproducible draws; zero stays random.
	Seed int64 `env:"LORESMITH_SEED"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LORESMITH_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, lorerr.Wrap(err, "parsing environment")
	}
	return &cfg, nil
}

// Folders returns the fold order for the loader: the reference folder first
// when set, the campaign folder last so it wins overwrites.
func (c *Config) Folders() []string {
	var folders []string
	if c.SRDFolder != "" {
		folders = append(folders, c.SRDFolder)
	}
	return append(folders, c.CampaignFolder)
}

// Roller builds the dice roller: seeded when Seed is set, random otherwise.
func (c *Config) Roller() dice.Roller {
	if c.Seed != 0 {
		return dice.NewSeededRoller(c.Seed)
	}
	return dice.NewRandomRoller()
}

// SlogLevel maps LogLevel onto slog's levels, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
