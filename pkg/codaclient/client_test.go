package codaclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/mackiedrew/coda-client/pkg/codaclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := codaclient.New(context.Background(), nil)
		require.ErrorIs(t, err, coda.ErrConfigRequired)
	})

	t.Run("requires token", func(t *testing.T) {
		t.Parallel()

		_, err := codaclient.New(context.Background(), &coda.Config{})
		require.Error(t, err)
	})

	t.Run("does not modify the caller's config", func(t *testing.T) {
		t.Parallel()

		config := &coda.Config{BaseURL: "coda.example.com/apis/v1/", APIToken: "test-token"}

		client, err := codaclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "coda.example.com/apis/v1/", config.BaseURL)
	})
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", "https://coda.io/apis/v1"},
		{"https://coda.io/apis/v1/", "https://coda.io/apis/v1"},
		{"coda.example.com/apis/v1", "https://coda.example.com/apis/v1"},
		{"http://localhost:8080", "http://localhost:8080"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, codaclient.NormalizeBaseURL(tt.in), tt.in)
	}
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := codaclient.NewWithToken(context.Background(), "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewFromEnv(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer env-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"name": "Env User"})
	}))
	defer server.Close()

	t.Setenv("CODA_API_TOKEN", "env-token")
	t.Setenv("CODA_API_URL", server.URL)

	client, err := codaclient.NewFromEnv(context.Background())
	require.NoError(t, err)

	user, err := client.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Env User", user.Name)

	t.Setenv("CODA_API_TOKEN", "")

	_, err = codaclient.NewFromEnv(context.Background())
	require.ErrorIs(t, err, coda.ErrAPITokenRequired)
}
