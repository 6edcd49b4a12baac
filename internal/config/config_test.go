package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.TopProjects != 5 {
		t.Errorf("expected default top projects 5, got %d", cfg.TopProjects)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAMOJA_LOG_LEVEL", "debug")
	t.Setenv("PAMOJA_TOP_PROJECTS", "12")
	cfg := Load()
	if cfg.LogLevel != "debug" || cfg.TopProjects != 12 {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, false},
		{"top too small", func(c *Config) { c.TopProjects = 0 }, false},
		{"top too large", func(c *Config) { c.TopProjects = 500 }, false},
		{"missing seed file", func(c *Config) {
			c.SeedPath = filepath.Join("no", "such", "seed.json")
		}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{LogLevel: "info", TopProjects: 5}
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation failure")
			}
		})
	}
}
