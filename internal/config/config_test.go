package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, defaultGuestCartDir, cfg.GuestCartDir)
	assert.Empty(t, cfg.StripeKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://shop.example.com/api/v1")
	t.Setenv("STOREFRONT_STRIPE_KEY", "pk_test_abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "pk_test_abc", cfg.StripeKey)
}

func TestLoadRejectsRelativeURL(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "/api/v1")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{APIBaseURL: "http://localhost:8080/api/v1", GuestCartDir: "."}
	assert.NoError(t, valid.Validate())

	assert.Error(t, Config{GuestCartDir: "."}.Validate())
	assert.Error(t, Config{APIBaseURL: "http://localhost:8080"}.Validate())
}
