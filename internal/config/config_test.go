package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:        "development",
		Port:       "8460",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		DBPassword: "secure-password",
		DBSSLMode:  "disable",
		RedisURL:   "redis://localhost:6379",
	}
}

func TestConfig_Validate_Required(t *testing.T) {
	c := validConfig()
	c.Port = ""
	assert.Error(t, c.Validate())

	c = validConfig()
	c.JWTSecret = ""
	assert.Error(t, c.Validate())

	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Production(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"strong settings pass", func(c *Config) {
			c.DBSSLMode = "require"
		}, false},
		{"default JWT secret rejected", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short JWT secret rejected", func(c *Config) {
			c.JWTSecret = "short"
		}, true},
		{"default DB password rejected", func(c *Config) {
			c.DBPassword = "password"
			c.DBSSLMode = "require"
		}, true},
		{"disabled SSL rejected", func(c *Config) {
			c.DBSSLMode = "disable"
		}, true},
		{"verify-full SSL accepted", func(c *Config) {
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = "production"
			c.DBSSLMode = "require"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_DevelopmentAllowsWeakSettings(t *testing.T) {
	c := validConfig()
	c.JWTSecret = "short-dev-secret"
	c.DBSSLMode = ""
	assert.NoError(t, c.Validate())
}
