package sheets

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, SaveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, loaded.Expiry.Equal(token.Expiry))
}

func TestLoadToken_Missing(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGetOrCreateToken_UsesSavedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, SaveToken(path, &oauth2.Token{RefreshToken: "saved"}))

	token, err := GetOrCreateToken(context.Background(), OAuth2Config{TokenFile: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, "saved", token.RefreshToken)
}

func TestAuthenticateOAuth2Interactive_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AuthenticateOAuth2Interactive(ctx, OAuth2Config{
		ClientID:     "id",
		ClientSecret: "secret",
		CallbackAddr: "127.0.0.1:0",
	}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	report := testReport()

	require.NoError(t, m.Write(context.Background(), report))
	assert.Equal(t, 1, m.Calls())
	assert.Same(t, report, m.LastReport)

	m.SetWriteError(assert.AnError)
	assert.ErrorIs(t, m.Write(context.Background(), report), assert.AnError)
	assert.Equal(t, 2, m.Calls())
}
