package config

import (
	"testing"

	"github.com/Veraticus/payday/internal/common"
	"github.com/Veraticus/payday/internal/sheets"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(env, "")
	}
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadSheetsConfig_FromViper(t *testing.T) {
	clearSheetsEnv(t)
	viper.Set("sheets.client_id", "id")
	viper.Set("sheets.client_secret", "secret")
	viper.Set("sheets.refresh_token", "token")
	viper.Set("sheets.spreadsheet_name", "Household")
	viper.Set("sheets.formatting", false)

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "Household", cfg.SpreadsheetName)
	assert.False(t, cfg.EnableFormatting)
}

func TestLoadSheetsConfig_EnvFallback(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("HOME", "/home/tester")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "~/key.json")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "From Env")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/key.json", cfg.ServiceAccountPath)
	assert.Equal(t, "From Env", cfg.SpreadsheetName)
	assert.True(t, cfg.EnableFormatting)
}

func TestLoadSheetsConfig_ViperWins(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-id")
	viper.Set("sheets.client_id", "viper-id")
	viper.Set("sheets.client_secret", "secret")
	viper.Set("sheets.refresh_token", "token")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "viper-id", cfg.ClientID)
	assert.Equal(t, sheets.DefaultSpreadsheetName, cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_Missing(t *testing.T) {
	clearSheetsEnv(t)

	_, err := LoadSheetsConfig()
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
