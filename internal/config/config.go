// Package config loads client configuration from the environment, with an
// optional .env file for development setups.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	DefaultTimeout = 30 * time.Second
)

// Config is the client's runtime configuration. Flag values override these;
// these override the built-in defaults.
type Config struct {
	BaseURL   string        // SWAPMART_API_URL
	Timeout   time.Duration // SWAPMART_TIMEOUT (Go duration syntax)
	TokenFile string        // SWAPMART_TOKEN_FILE (empty = default location)
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first, best-effort; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
	if v := os.Getenv("SWAPMART_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SWAPMART_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	cfg.TokenFile = os.Getenv("SWAPMART_TOKEN_FILE")
	return cfg
}
