package config

import "testing"

type envConfig struct {
	Path  string `env:"CONFIG_TEST_PATH" envDefault:"game.sqlite"`
	Limit int    `env:"CONFIG_TEST_LIMIT" envDefault:"8"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Path != "game.sqlite" {
		t.Fatalf("path = %q, want default", cfg.Path)
	}
	if cfg.Limit != 8 {
		t.Fatalf("limit = %d, want default", cfg.Limit)
	}
}

func TestParseEnvReadsVariables(t *testing.T) {
	t.Setenv("CONFIG_TEST_PATH", "/tmp/other.sqlite")
	t.Setenv("CONFIG_TEST_LIMIT", "42")

	var cfg envConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Path != "/tmp/other.sqlite" {
		t.Fatalf("path = %q", cfg.Path)
	}
	if cfg.Limit != 42 {
		t.Fatalf("limit = %d", cfg.Limit)
	}
}

func TestParseEnvInvalidValue(t *testing.T) {
	t.Setenv("CONFIG_TEST_LIMIT", "not-a-number")

	var cfg envConfig
	if err := ParseEnv(&cfg); err == nil {
		t.Fatalf("expected parse error")
	}
}
