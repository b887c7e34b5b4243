// Package config loads payday's settings from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/payday/internal/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Default setting values.
const (
	DefaultDatabasePath     = "$HOME/.local/share/payday/payday.db"
	DefaultCSVPath          = "transactions.csv"
	DefaultRate             = 60
	DefaultBudgetLimit      = 1000
	DefaultWarningHeadroom  = 250
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultCheckpointOnWipe = true
)

// AppConfig is the typed view of the payday settings.
type AppConfig struct {
	DatabasePath    string
	CSVPath         string
	LogLevel        string
	LogFormat       string
	Rate            decimal.Decimal
	BudgetLimit     decimal.Decimal
	WarningHeadroom decimal.Decimal
	AutoCheckpoint  bool
}

// SetDefaults registers the default for every key AppConfig reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("export.csv_path", DefaultCSVPath)
	v.SetDefault("hours.rate", DefaultRate)
	v.SetDefault("budget.default_limit", DefaultBudgetLimit)
	v.SetDefault("budget.warning_headroom", DefaultWarningHeadroom)
	v.SetDefault("checkpoint.auto", DefaultCheckpointOnWipe)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// LoadAppConfig reads and validates the settings held by the global viper.
func LoadAppConfig() (*AppConfig, error) {
	return Load(viper.GetViper())
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (*AppConfig, error) {
	rate, err := decimalSetting(v, "hours.rate")
	if err != nil {
		return nil, err
	}
	limit, err := decimalSetting(v, "budget.default_limit")
	if err != nil {
		return nil, err
	}
	headroom, err := decimalSetting(v, "budget.warning_headroom")
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Clean(ExpandPath(v.GetString("database.path")))
	cfg := &AppConfig{
		DatabasePath:    dbPath,
		CSVPath:         ResolvePath(v.GetString("export.csv_path"), filepath.Dir(dbPath)),
		LogLevel:        v.GetString("logging.level"),
		LogFormat:       v.GetString("logging.format"),
		Rate:            rate,
		BudgetLimit:     limit,
		WarningHeadroom: headroom,
		AutoCheckpoint:  v.GetBool("checkpoint.auto"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *AppConfig) Validate() error {
	switch {
	case c.DatabasePath == "" || c.DatabasePath == ".":
		return fmt.Errorf("%w: database.path is empty", common.ErrMissingConfig)
	case !c.Rate.IsPositive():
		return fmt.Errorf("%w: hours.rate must be positive", common.ErrInvalidConfig)
	case c.BudgetLimit.IsNegative():
		return fmt.Errorf("%w: budget.default_limit cannot be negative", common.ErrInvalidConfig)
	case c.WarningHeadroom.IsNegative():
		return fmt.Errorf("%w: budget.warning_headroom cannot be negative", common.ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json", common.ErrInvalidConfig)
	}
	return nil
}

// ExpandPath replaces a leading ~ with the home directory and expands
// $VAR references.
func ExpandPath(path string) string {
	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + rest
		}
	}
	return os.ExpandEnv(path)
}

// ResolvePath expands path and anchors it at base when it is relative.
// Settings use it so that files named in the config land next to the
// database rather than in whatever directory payday was started from.
func ResolvePath(path, base string) string {
	path = ExpandPath(path)
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

// decimalSetting reads a numeric key as a decimal, accepting both YAML
// numbers and strings such as "62.50".
func decimalSetting(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q is not a number", common.ErrInvalidConfig, key, raw)
	}
	return d, nil
}
