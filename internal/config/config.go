// Package config loads practice server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/llm"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
)

const devSessionSecret = "its-development-session-secret"

// Config holds server configuration.
type Config struct {
	Addr           string
	DBPath         string
	SessionSecret  string
	AllowedOrigins []string
	Env            string
	LLM            llm.Config
}

// Load reads a .env file when present, then the ITS_* environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPath := os.Getenv("ITS_DB")
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	cfg := &Config{
		Addr:           getEnv("ITS_ADDR", ":5000"),
		DBPath:         dbPath,
		SessionSecret:  getEnv("ITS_SESSION_SECRET", ""),
		AllowedOrigins: splitList(getEnv("ITS_ALLOWED_ORIGINS", "")),
		Env:            getEnv("ITS_ENV", "development"),
		LLM:            llm.ConfigFromEnv(),
	}
	if cfg.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.SessionSecret = devSessionSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ITS_ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("ITS_DB cannot be empty")
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("ITS_ENV must be development or production, got %q", c.Env)
	}
	if !c.IsDevelopment() && len(c.SessionSecret) < 32 {
		return fmt.Errorf("ITS_SESSION_SECRET must be at least 32 bytes in production")
	}
	return c.LLM.Validate()
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
