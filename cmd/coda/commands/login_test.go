package commands

import (
	"net/http"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginVerifiesToken(t *testing.T) {
	path := setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("GET /whoami", http.StatusOK, map[string]interface{}{
		"name": "Ada", "loginId": "ada@example.com", "type": "user", "scoped": false, "tokenName": "cli",
	})

	out, err := runCommand(t, NewLoginCommand(), "", "--token", "fresh-token")
	require.NoError(t, err)
	assert.Contains(t, out, "as Ada (ada@example.com)")

	req := api.last(http.MethodGet, "/whoami")
	require.NotNil(t, req)
	assert.Equal(t, "Bearer fresh-token", req.Header.Get("Authorization"))

	config := readTestConfig(t, path)
	assert.Equal(t, "fresh-token", config.Token)
	assert.Equal(t, viper.GetString("api"), config.API)
	assert.NotNil(t, config.TokenUpdatedAt)
}

func TestLoginRejectedToken(t *testing.T) {
	path := setupCLI(t, "table")
	api := newFakeCoda(t)
	api.respond("GET /whoami", http.StatusUnauthorized, map[string]interface{}{
		"statusCode": 401, "statusMessage": "Unauthorized", "message": "Bad token",
	})

	_, err := runCommand(t, NewLoginCommand(), "", "--token", "bad-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to verify token")
	assert.NoFileExists(t, path)
}

func TestLoginFromStdinWithoutVerify(t *testing.T) {
	path := setupCLI(t, "table")

	out, err := runCommand(t, NewLoginCommand(), "piped-token\n", "--no-verify")
	require.NoError(t, err)
	assert.Equal(t, "Token saved for https://coda.io/apis/v1\n", out)

	config := readTestConfig(t, path)
	assert.Equal(t, "piped-token", config.Token)
	assert.Empty(t, config.API)

	_, err = runCommand(t, NewLoginCommand(), "\n", "--no-verify")
	require.ErrorIs(t, err, ErrTokenRequired)
}

func TestLogout(t *testing.T) {
	path := setupCLI(t, "table")

	_, err := runCommand(t, NewLoginCommand(), "", "--token", "old-token", "--no-verify")
	require.NoError(t, err)

	out, err := runCommand(t, NewLogoutCommand(), "")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	config := readTestConfig(t, path)
	assert.Empty(t, config.Token)
	assert.Nil(t, config.TokenUpdatedAt)
}
