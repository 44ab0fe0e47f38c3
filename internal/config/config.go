// Package config provides Viper-based configuration loading for the battle simulator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// BattleConfig holds the tunable battle rules.
type BattleConfig struct {
	// TriggerDieSides is the die rolled against effect thresholds.
	TriggerDieSides int `mapstructure:"trigger_die_sides"`
	// SleepDieSides is the die rolled for sleep duration.
	SleepDieSides int `mapstructure:"sleep_die_sides"`
	// StartingHP is every combatant's starting and maximum HP.
	StartingHP int `mapstructure:"starting_hp"`
	// Seed makes battles replayable; 0 selects a cryptographic source.
	Seed uint64 `mapstructure:"seed"`
}

// Seeded reports whether battles use a deterministic source.
func (b BattleConfig) Seeded() bool { return b.Seed != 0 }

// ContentConfig locates the externally supplied battle content.
type ContentConfig struct {
	MovesFile     string `mapstructure:"moves_file"`
	TypeChartFile string `mapstructure:"type_chart_file"`
	RosterFile    string `mapstructure:"roster_file"`
	// EffectsDir optionally holds YAML effect definitions that extend the
	// built-in effects. Empty means built-ins only.
	EffectsDir string `mapstructure:"effects_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Battle  BattleConfig  `mapstructure:"battle"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.TriggerDieSides < 1 {
		errs = append(errs, fmt.Sprintf("battle.trigger_die_sides must be >= 1, got %d", b.TriggerDieSides))
	}
	if b.SleepDieSides < 1 {
		errs = append(errs, fmt.Sprintf("battle.sleep_die_sides must be >= 1, got %d", b.SleepDieSides))
	}
	if b.StartingHP < 1 {
		errs = append(errs, fmt.Sprintf("battle.starting_hp must be >= 1, got %d", b.StartingHP))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.MovesFile == "" {
		errs = append(errs, "content.moves_file must not be empty")
	}
	if c.RosterFile == "" {
		errs = append(errs, "content.roster_file must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with MONBATTLE_ prefix
	v.SetEnvPrefix("MONBATTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("battle.trigger_die_sides", 6)
	v.SetDefault("battle.sleep_die_sides", 4)
	v.SetDefault("battle.starting_hp", 3)
	v.SetDefault("battle.seed", 0)

	v.SetDefault("content.moves_file", "content/moves.yaml")
	v.SetDefault("content.type_chart_file", "content/type_chart.yaml")
	v.SetDefault("content.roster_file", "content/roster.yaml")
	v.SetDefault("content.effects_dir", "")
}
