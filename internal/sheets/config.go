// Package sheets exports payday reports to Google Sheets.
package sheets

import (
	"fmt"
	"time"

	"github.com/Veraticus/payday/internal/common"
)

// DefaultSpreadsheetName is used when creating a spreadsheet without a name.
const DefaultSpreadsheetName = "Payday Report"

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		EnableFormatting: true,
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// HasOAuth reports whether a complete set of OAuth2 credentials is present.
func (c *Config) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasServiceAccount := c.ServiceAccountPath != ""

	switch {
	case !c.HasOAuth() && !hasServiceAccount:
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	case c.HasOAuth() && hasServiceAccount:
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive", common.ErrInvalidConfig)
	case c.RetryAttempts < 0:
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	case c.RetryDelay < 0:
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("%w: unknown time zone %q", common.ErrInvalidConfig, c.TimeZone)
	}
	return nil
}
