// Package config provides configuration management for the journal
// application.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	Goals   GoalsConfig   `mapstructure:"goals"`
	UI      UIConfig      `mapstructure:"ui"`
}

// JournalConfig holds journal data configuration.
type JournalConfig struct {
	DBPath string   `mapstructure:"db_path"`
	Tags   []string `mapstructure:"tags"`
}

// GoalsConfig holds the daily-goal thresholds.
type GoalsConfig struct {
	MaxLoss      float64 `mapstructure:"max_loss"`
	TargetProfit float64 `mapstructure:"target_profit"`
	MaxTrades    int     `mapstructure:"max_trades"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	Currency     string `mapstructure:"currency"`
}

// DailyGoals converts the configured thresholds to the model form.
func (g GoalsConfig) DailyGoals() models.DailyGoals {
	return models.DailyGoals{
		MaxLoss:      g.MaxLoss,
		TargetProfit: g.TargetProfit,
		MaxTrades:    g.MaxTrades,
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trading-journal"
	}
	return filepath.Join(home, ".config", "trading-journal")
}

// Load loads configuration from the specified directory, falling back to
// defaults when no config file exists. If configDir is empty, the default
// config directory is used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	defaults := models.DefaultDailyGoals()
	v.SetDefault("journal.db_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("journal.tags", models.DefaultAvailableTags())
	v.SetDefault("goals.max_loss", defaults.MaxLoss)
	v.SetDefault("goals.target_profit", defaults.TargetProfit)
	v.SetDefault("goals.max_trades", defaults.MaxTrades)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.currency", "$")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config.toml")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "parsing configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obviously bad values.
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "journal.db_path must not be empty")
	}
	if c.Goals.MaxLoss < 0 || c.Goals.TargetProfit < 0 || c.Goals.MaxTrades < 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "goal thresholds must not be negative")
	}
	return nil
}
