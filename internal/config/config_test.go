package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:          "8000",
		JWTSecret:     "secure-secret-at-least-32-chars-long",
		SessionCookie: "yatube_session",
		PageSize:      10,
		TemplatesDir:  "./web/templates",
		DBPassword:    "secure-password",
		DBSSLMode:     "require",
		Env:           "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero page size", func(c *Config) { c.PageSize = 0 }, true},
		{"Negative page size", func(c *Config) { c.PageSize = -5 }, true},
		{"Production with default JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with default DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Valid production config", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
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

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", c.Port)
	assert.Equal(t, "yatube", c.DBName)
	assert.Equal(t, "yatube_session", c.SessionCookie)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, "./web/templates", c.TemplatesDir)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "test")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("SESSION_COOKIE", "custom_session")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, c.PageSize)
	assert.Equal(t, "custom_session", c.SessionCookie)
}
