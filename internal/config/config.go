// Package config holds the process-wide client configuration, set once at
// startup.
package config

import (
	"errors"
	"net/url"
	"os"

	opts "github.com/goliatone/go-options"
)

const (
	defaultAPIBaseURL   = "http://localhost:8080/api/v1"
	defaultGuestCartDir = ".greenbasket"
)

type Config struct {
	// APIBaseURL points at the backend, including the /api/v1 prefix.
	APIBaseURL string
	// StripeKey is the processor key; empty is fine when the backend only
	// issues mock intents.
	StripeKey string
	// GuestCartDir is where the anonymous cart snapshot lives.
	GuestCartDir string
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base url is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("api base url must be absolute")
	}
	if c.GuestCartDir == "" {
		return errors.New("guest cart dir is required")
	}
	return nil
}

func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:   getEnv("STOREFRONT_API_URL", defaultAPIBaseURL),
		StripeKey:    getEnv("STOREFRONT_STRIPE_KEY", ""),
		GuestCartDir: getEnv("STOREFRONT_GUEST_CART_DIR", defaultGuestCartDir),
	}
	if _, err := opts.Load(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
