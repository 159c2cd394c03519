// Package config provides configuration loading for focal.
//
// Configuration is read from an optional YAML file and overridden by
// FOCAL_* environment variables, with hardcoded defaults underneath.
package config

import (
	"fmt"
	"strings"
)

// Config holds the complete focal configuration.
type Config struct {
	Database   DatabaseConfig   `koanf:"database"`
	Logging    LoggingConfig    `koanf:"logging"`
	Session    SessionConfig    `koanf:"session"`
	Score      ScoreConfig      `koanf:"score"`
	Regulation RegulationConfig `koanf:"regulation"`
}

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	Path string `koanf:"path"` // empty means ~/.focal/focal.db
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // console or json
}

// SessionConfig holds timing knobs for the live session view.
type SessionConfig struct {
	NudgeIntervalMinutes      int `koanf:"nudge_interval_minutes"`
	RegulationIntervalSeconds int `koanf:"regulation_interval_seconds"`
	HardNudgeDriftThreshold   int `koanf:"hard_nudge_drift_threshold"`
	SoftNudgeTimeoutSeconds   int `koanf:"soft_nudge_timeout_seconds"`
}

// ScoreConfig holds the focus score penalty weights.
type ScoreConfig struct {
	DriftPenalty        int `koanf:"drift_penalty"`
	DistractionPenalty  int `koanf:"distraction_penalty"`
	ShortfallPenaltyMax int `koanf:"shortfall_penalty_max"`
}

// RegulationConfig holds the externally defined break rules.
type RegulationConfig struct {
	Rules []Rule `koanf:"rules"`
}

// Rule types a regulation break can carry.
var ruleTypes = map[string]bool{
	"hydrate": true,
	"stretch": true,
	"meal":    true,
	"rest":    true,
}

// Rule is one configured regulation break. It matches once EveryMinutes of
// active session time have elapsed since the session started or since the
// rule last fired for that session.
type Rule struct {
	Type                  string `koanf:"type"`
	Message               string `koanf:"message"`
	EveryMinutes          int    `koanf:"every_minutes"`
	MandatoryDelaySeconds int    `koanf:"mandatory_delay_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Session: SessionConfig{
			NudgeIntervalMinutes:      5,
			RegulationIntervalSeconds: 60,
			HardNudgeDriftThreshold:   2,
			SoftNudgeTimeoutSeconds:   5,
		},
		Score: ScoreConfig{
			DriftPenalty:        5,
			DistractionPenalty:  3,
			ShortfallPenaltyMax: 10,
		},
		Regulation: RegulationConfig{
			Rules: []Rule{
				{Type: "hydrate", Message: "Time to drink some water", EveryMinutes: 45},
				{Type: "stretch", Message: "Stand up and stretch", EveryMinutes: 60, MandatoryDelaySeconds: 60},
			},
		},
	}
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}

	if c.Session.NudgeIntervalMinutes < 1 {
		return fmt.Errorf("session.nudge_interval_minutes must be >= 1, got %d", c.Session.NudgeIntervalMinutes)
	}
	if c.Session.RegulationIntervalSeconds < 1 {
		return fmt.Errorf("session.regulation_interval_seconds must be >= 1, got %d", c.Session.RegulationIntervalSeconds)
	}
	if c.Session.HardNudgeDriftThreshold < 0 {
		return fmt.Errorf("session.hard_nudge_drift_threshold must be >= 0, got %d", c.Session.HardNudgeDriftThreshold)
	}
	if c.Session.SoftNudgeTimeoutSeconds < 1 {
		return fmt.Errorf("session.soft_nudge_timeout_seconds must be >= 1, got %d", c.Session.SoftNudgeTimeoutSeconds)
	}

	if c.Score.DriftPenalty < 0 || c.Score.DistractionPenalty < 0 || c.Score.ShortfallPenaltyMax < 0 {
		return fmt.Errorf("score penalties must be >= 0")
	}

	for i, rule := range c.Regulation.Rules {
		if !ruleTypes[rule.Type] {
			return fmt.Errorf("regulation.rules[%d]: invalid type %q (want hydrate, stretch, meal or rest)", i, rule.Type)
		}
		if rule.EveryMinutes < 1 {
			return fmt.Errorf("regulation.rules[%d]: every_minutes must be >= 1, got %d", i, rule.EveryMinutes)
		}
		if rule.MandatoryDelaySeconds < 0 {
			return fmt.Errorf("regulation.rules[%d]: mandatory_delay_seconds must be >= 0", i)
		}
		if rule.Message == "" {
			return fmt.Errorf("regulation.rules[%d]: message cannot be empty", i)
		}
	}

	return nil
}
