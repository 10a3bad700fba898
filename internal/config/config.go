package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	Port    int    `env:"CLIPCART_PORT" envDefault:"8080"`
	BaseURL string `env:"CLIPCART_BASE_URL" envDefault:"http://localhost:8080"`

	// SessionSecret signs the anonymous session cookies. Left empty, a
	// random secret is generated at startup and sessions do not survive
	// a restart.
	SessionSecret string        `env:"CLIPCART_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"CLIPCART_SESSION_TTL" envDefault:"30m"`

	// Simulated upload pipeline pacing.
	UploadProgressInterval time.Duration `env:"CLIPCART_UPLOAD_PROGRESS_INTERVAL" envDefault:"300ms"`
	TierDuration           time.Duration `env:"CLIPCART_TIER_DURATION" envDefault:"1500ms"`

	// Token-bucket limits applied to mutating endpoints, per client.
	RateLimit      float64 `env:"CLIPCART_RATE_LIMIT" envDefault:"10"`
	RateLimitBurst int     `env:"CLIPCART_RATE_LIMIT_BURST" envDefault:"20"`
}

// Load reads the environment and fills in generated defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimit <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("rate limit and burst must be positive")
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
