//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-bench.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for pgedge-bench.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// Suite is the experiment suite to use.
	Suite string `mapstructure:"suite"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Bench holds configuration for the bench subcommand.
	Bench BenchConfig `mapstructure:"bench"`

	// Retry bounds retries of transient backend failures.
	Retry RetryConfig `mapstructure:"retry"`
}

// InitConfig holds configuration for schema installation and data
// generation.
type InitConfig struct {
	// Scale multiplies the suite's per-entity base row counts.
	Scale int `mapstructure:"scale"`

	// Seed makes generation reproducible: a fixed (suite, scale, seed)
	// produces an identical dataset.
	Seed uint64 `mapstructure:"seed"`

	// Workers is the number of parallel generation partitions per
	// entity.
	Workers int `mapstructure:"workers"`

	// BatchSize is the number of rows per batch insert.
	BatchSize int `mapstructure:"batch_size"`

	// DropExisting drops existing schema before initialization.
	// Generation always appends; truncation only happens here.
	DropExisting bool `mapstructure:"drop_existing"`
}

// BenchConfig holds configuration for benchmark runs.
type BenchConfig struct {
	// WarmUp runs one discarded execution before the measured one.
	WarmUp bool `mapstructure:"warm_up"`

	// TimeoutSeconds is the per-execution ceiling (0 = none).
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// Force permits runs against a stale variant; the record is
	// tagged.
	Force bool `mapstructure:"force"`
}

// RetryConfig bounds the exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int `mapstructure:"max_attempts"`
	BaseDelayMs int `mapstructure:"base_delay_ms"`
	MaxDelayMs  int `mapstructure:"max_delay_ms"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Suite:    "ecommerce",
		Init: InitConfig{
			Scale:        1,
			Seed:         1,
			Workers:      4,
			BatchSize:    1000,
			DropExisting: false,
		},
		Bench: BenchConfig{
			WarmUp:         false,
			TimeoutSeconds: 300,
		},
		Retry: RetryConfig{
			MaxAttempts: 5,
			BaseDelayMs: 200,
			MaxDelayMs:  5000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-bench.yaml
// 3. ~/.config/pgedge-bench/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-bench")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-bench"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Suite == "" {
		return fmt.Errorf("suite is required")
	}
	return nil
}

// ValidateInit checks configuration required for the init command.
func (c *Config) ValidateInit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Init.Scale < 1 {
		return fmt.Errorf("scale must be at least 1")
	}
	if c.Init.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.Init.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	return nil
}

// ValidateBench checks configuration required for the bench command.
func (c *Config) ValidateBench() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Bench.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be non-negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1")
	}
	return nil
}
