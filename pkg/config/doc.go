// Package config loads application configuration from environment variables
// into tagged structs, with .env file support and per-type caching.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//	type SessionConfig struct {
//		CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
//		Lifetime   time.Duration `env:"SESSION_LIFETIME" envDefault:"24h"`
//	}
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed once per process; use ResetCache in tests.
package config
