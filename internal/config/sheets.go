package config

import (
	"os"

	"github.com/Veraticus/payday/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration. Precedence is viper
// (config file or PAYDAY_SHEETS_* env vars), then GOOGLE_SHEETS_* env vars,
// then defaults.
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	config.ClientID = viper.GetString("sheets.client_id")
	config.ClientSecret = viper.GetString("sheets.client_secret")
	config.RefreshToken = viper.GetString("sheets.refresh_token")
	config.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		config.SpreadsheetName = v
	}
	if v := viper.GetString("sheets.time_zone"); v != "" {
		config.TimeZone = v
	}
	if viper.IsSet("sheets.formatting") {
		config.EnableFormatting = viper.GetBool("sheets.formatting")
	}

	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	fallback(&config.ClientID, "GOOGLE_SHEETS_CLIENT_ID")
	fallback(&config.ClientSecret, "GOOGLE_SHEETS_CLIENT_SECRET")
	fallback(&config.RefreshToken, "GOOGLE_SHEETS_REFRESH_TOKEN")
	fallback(&config.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	if v := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME"); v != "" && config.SpreadsheetName == sheets.DefaultSpreadsheetName {
		config.SpreadsheetName = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// fallback fills an empty field from the environment.
func fallback(field *string, env string) {
	if v := os.Getenv(env); v != "" && *field == "" {
		*field = v
	}
}
