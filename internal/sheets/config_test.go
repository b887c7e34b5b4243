package sheets

import (
	"testing"
	"time"

	"github.com/Veraticus/payday/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	oauth := func(mod func(*Config)) Config {
		c := DefaultConfig()
		c.ClientID = "test-client"
		c.ClientSecret = "test-secret"
		c.RefreshToken = "test-token"
		mod(&c)
		return c
	}

	tests := []struct {
		name    string
		config  Config
		wantErr error
		errMsg  string
	}{
		{
			name:   "valid oauth config",
			config: oauth(func(*Config) {}),
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				TimeZone:           "UTC",
			},
		},
		{
			name:    "missing auth",
			config:  DefaultConfig(),
			wantErr: common.ErrMissingConfig,
			errMsg:  "no authentication method configured",
		},
		{
			name:    "partial oauth credentials",
			config:  oauth(func(c *Config) { c.ClientSecret = "" }),
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "multiple auth methods",
			config:  oauth(func(c *Config) { c.ServiceAccountPath = "/path/to/key.json" }),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name:    "invalid batch size",
			config:  oauth(func(c *Config) { c.BatchSize = 0 }),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "batch size must be positive",
		},
		{
			name:    "negative retry delay",
			config:  oauth(func(c *Config) { c.RetryDelay = -time.Second }),
			wantErr: common.ErrInvalidConfig,
			errMsg:  "retry delay cannot be negative",
		},
		{
			name:    "unknown time zone",
			config:  oauth(func(c *Config) { c.TimeZone = "Mars/Olympus" }),
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.True(t, config.EnableFormatting)
	assert.Equal(t, "UTC", config.TimeZone)
	assert.Equal(t, DefaultSpreadsheetName, config.SpreadsheetName)
	assert.Equal(t, 1000, config.BatchSize)
	assert.Equal(t, 3, config.RetryAttempts)
	assert.Equal(t, time.Second, config.RetryDelay)
}
