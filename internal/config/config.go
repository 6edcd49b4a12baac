package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Logging
	LogLevel string

	// Seed source: path to a JSON seed file, or empty to use the
	// built-in demo ledger.
	SeedPath string

	// Report
	TopProjects int
}

func Load() *Config {
	return &Config{
		LogLevel:    getEnv("PAMOJA_LOG_LEVEL", "info"),
		SeedPath:    getEnv("PAMOJA_SEED_FILE", ""),
		TopProjects: getEnvInt("PAMOJA_TOP_PROJECTS", 5),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level %q: must be debug, info, warn or error", c.LogLevel))
	}

	if c.SeedPath != "" {
		if _, err := os.Stat(c.SeedPath); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("seed file does not exist: %s", c.SeedPath))
		}
	}

	if c.TopProjects < 1 {
		errs = append(errs, fmt.Sprintf("invalid top projects %d: must be at least 1", c.TopProjects))
	} else if c.TopProjects > 100 {
		errs = append(errs, fmt.Sprintf("invalid top projects %d: must be at most 100", c.TopProjects))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
