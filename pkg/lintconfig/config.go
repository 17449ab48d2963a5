// Copyright 2025 Andamio Labs
//
// Environment-variable configuration for the txcore-lint and
// sidefx-mock-server command-line tools.

package lintconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything either command-line tool needs, read once at
// startup from the process environment.
type Config struct {
	// ProtocolSpecDir is the directory txcore-lint resolves each registered
	// definition's ProtocolSpec.YamlPath against.
	ProtocolSpecDir string

	// ListenAddr is the address sidefx-mock-server binds its HTTP
	// recorder on.
	ListenAddr  string
	MetricsAddr string
	HealthAddr  string

	// DatabaseURL, when set, makes sidefx-mock-server persist received
	// calls via pkg/sidefxstore instead of keeping them in memory only.
	DatabaseURL      string
	DatabaseMaxConns int
	DatabaseMinConns int
	DatabaseMaxIdle  time.Duration
	DatabaseRequired bool

	LogLevel string
}

// Load reads Config from the environment, applying the same safe-default
// philosophy used elsewhere in this codebase: server addresses and pool
// sizes default to sensible values, credentials never do.
func Load() (*Config, error) {
	cfg := &Config{
		ProtocolSpecDir: getEnv("PROTOCOL_SPEC_DIR", "./protocolspec"),

		ListenAddr:  getEnv("API_HOST", "0.0.0.0") + ":" + getEnv("API_PORT", "8080"),
		MetricsAddr: getEnv("API_HOST", "0.0.0.0") + ":" + getEnv("METRICS_PORT", "9090"),
		HealthAddr:  getEnv("API_HOST", "0.0.0.0") + ":" + getEnv("HEALTH_CHECK_PORT", "8081"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: getEnvInt("DATABASE_MAX_CONNS", 25),
		DatabaseMinConns: getEnvInt("DATABASE_MIN_CONNS", 5),
		DatabaseMaxIdle:  getEnvDuration("DATABASE_MAX_IDLE_TIME", 5*time.Minute),
		DatabaseRequired: getEnvBool("DATABASE_REQUIRED", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate checks the database-related settings. Neither command-line tool
// calls it: sidefx-mock-server checks DatabaseRequired itself at startup,
// and txcore-lint never opens a database connection.
func (c *Config) Validate() error {
	var errs []string

	if c.DatabaseRequired && c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required when DATABASE_REQUIRED=true")
	}
	if c.DatabaseURL != "" && strings.Contains(c.DatabaseURL, "sslmode=disable") {
		errs = append(errs, "DATABASE_URL should not disable sslmode outside local development")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
