//-------------------------------------------------------------------------
//
// pgEdge Benchmarking Harness
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Suite != "ecommerce" {
		t.Errorf("Expected default suite 'ecommerce', got %q", cfg.Suite)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got %q", cfg.LogLevel)
	}
	if cfg.Init.Scale != 1 || cfg.Init.Seed != 1 {
		t.Errorf("Unexpected init defaults: %+v", cfg.Init)
	}
	if cfg.Init.BatchSize != 1000 {
		t.Errorf("Expected default batch size 1000, got %d", cfg.Init.BatchSize)
	}
	if cfg.Bench.TimeoutSeconds != 300 {
		t.Errorf("Expected default timeout 300s, got %d", cfg.Bench.TimeoutSeconds)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Expected default retry attempts 5, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestValidateRequiresConnection(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing connection")
	}

	cfg.Connection = "postgres://localhost:5432/bench"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	cfg.Suite = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing suite")
	}
}

func TestValidateInit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost:5432/bench"

	if err := cfg.ValidateInit(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zeroScale", func(c *Config) { c.Init.Scale = 0 }},
		{"zeroWorkers", func(c *Config) { c.Init.Workers = 0 }},
		{"zeroBatchSize", func(c *Config) { c.Init.BatchSize = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			c.Connection = "postgres://localhost:5432/bench"
			tc.mutate(c)
			if err := c.ValidateInit(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestValidateBench(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost:5432/bench"

	if err := cfg.ValidateBench(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg.Bench.TimeoutSeconds = -1
	if err := cfg.ValidateBench(); err == nil {
		t.Error("Expected error for negative timeout")
	}

	cfg.Bench.TimeoutSeconds = 0
	cfg.Retry.MaxAttempts = 0
	if err := cfg.ValidateBench(); err == nil {
		t.Error("Expected error for zero retry attempts")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.yaml")
	content := `
connection: "postgres://example:5432/bench"
suite: ecommerce
log_level: debug
init:
  scale: 3
  seed: 99
  workers: 8
bench:
  warm_up: true
  timeout_seconds: 60
retry:
  max_attempts: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Connection != "postgres://example:5432/bench" {
		t.Errorf("Unexpected connection: %q", cfg.Connection)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Unexpected log level: %q", cfg.LogLevel)
	}
	if cfg.Init.Scale != 3 || cfg.Init.Seed != 99 || cfg.Init.Workers != 8 {
		t.Errorf("Unexpected init config: %+v", cfg.Init)
	}
	if !cfg.Bench.WarmUp || cfg.Bench.TimeoutSeconds != 60 {
		t.Errorf("Unexpected bench config: %+v", cfg.Bench)
	}
	if cfg.Retry.MaxAttempts != 2 {
		t.Errorf("Unexpected retry config: %+v", cfg.Retry)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Init.BatchSize != 1000 {
		t.Errorf("Expected default batch size, got %d", cfg.Init.BatchSize)
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without a config file failed: %v", err)
	}
	if cfg.Suite != "ecommerce" || cfg.Init.Scale != 1 {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}
