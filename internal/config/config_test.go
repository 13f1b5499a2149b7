package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:              "development",
		LogLevel:         "info",
		Addr:             ":8000",
		StorageBackend:   "file",
		DataDir:          "data",
		JWTSecret:        "dev-only-secret-change-me",
		JWTIssuer:        "vibetrack",
		AccessTokenTTL:   30 * time.Minute,
		Categories:       []string{"Work", "Health", "Personal"},
		Palette:          []string{"#FF6B6B", "#4ECDC4", "#45B7D1"},
		DefaultCategory:  "Personal",
		SuggestionsLimit: 5,
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateBackend(t *testing.T) {
	c := validConfig()
	c.StorageBackend = "redis"
	assert.Error(t, c.Validate())

	c = validConfig()
	c.StorageBackend = "postgres"
	assert.Error(t, c.Validate())
	c.PostgresDSN = "postgres://localhost/vibetrack"
	assert.NoError(t, c.Validate())
}

func TestValidateCategories(t *testing.T) {
	c := validConfig()
	c.DefaultCategory = "Finance"
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Palette = c.Palette[:1]
	assert.Error(t, c.Validate())
}

func TestValidateProductionSecret(t *testing.T) {
	c := validConfig()
	c.Env = "production"
	assert.Error(t, c.Validate())

	c.JWTSecret = "a-real-secret"
	assert.NoError(t, c.Validate())
}
