// Package config loads runner configuration from files and the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/felixgeelhaar/babybehave/bdd"
	"github.com/felixgeelhaar/babybehave/suite"
)

// Config controls how the CLI runs a suite.
type Config struct {
	// Policy is the failure policy: collect or abort.
	Policy string `yaml:"policy" toml:"policy" env:"BABYBEHAVE_POLICY"`
	// Color enables colored traces and summaries.
	Color bool `yaml:"color" toml:"color" env:"BABYBEHAVE_COLOR"`
	// Humanize prints scenario names as sentences in summaries.
	Humanize bool `yaml:"humanize" toml:"humanize" env:"BABYBEHAVE_HUMANIZE"`
	// Format is the summary format: text, json or yaml.
	Format string `yaml:"format" toml:"format" env:"BABYBEHAVE_FORMAT"`
	// Log configures structured engine logging.
	Log LogConfig `yaml:"log" toml:"log"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" env:"BABYBEHAVE_LOG"`
	Level   string `yaml:"level" toml:"level" env:"BABYBEHAVE_LOG_LEVEL"`
	JSON    bool   `yaml:"json" toml:"json" env:"BABYBEHAVE_LOG_JSON"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Policy: string(suite.PolicyCollect),
		Format: string(suite.FormatText),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyEnv overrides fields from BABYBEHAVE_* environment variables.
// Unset variables leave the current values untouched.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return &UserError{
			Code:       ErrCodeEnvInvalid,
			Message:    "invalid environment override",
			Suggestion: "Check the BABYBEHAVE_* variables; booleans accept true/false/1/0.",
			Underlying: fmt.Errorf("parse env: %w", err),
		}
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ErrorList

	if _, err := suite.ParsePolicy(c.Policy); err != nil {
		errs.AddValidation("policy", fmt.Sprintf("unknown policy %q", c.Policy), "Use collect or abort.")
	}
	if _, err := suite.ParseFormat(c.Format); err != nil {
		errs.AddValidation("format", fmt.Sprintf("unknown format %q", c.Format), "Use text, json or yaml.")
	}
	if _, ok := bdd.ParseLevel(c.Log.Level); !ok {
		errs.AddValidation("log.level", fmt.Sprintf("unknown level %q", c.Log.Level), "Use debug, info, warn or error.")
	}

	return errs.AsError()
}

// RunnerPolicy returns the parsed policy. Call Validate first.
func (c *Config) RunnerPolicy() suite.Policy {
	p, err := suite.ParsePolicy(c.Policy)
	if err != nil {
		return suite.PolicyCollect
	}
	return p
}

// ReportFormat returns the parsed summary format. Call Validate first.
func (c *Config) ReportFormat() suite.Format {
	f, err := suite.ParseFormat(c.Format)
	if err != nil {
		return suite.FormatText
	}
	return f
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() bdd.Level {
	level, _ := bdd.ParseLevel(c.Log.Level)
	return level
}
