package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/mackiedrew/coda-client/internal/auth"
	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), nil)
		require.ErrorIs(t, err, ErrConfigRequired)
	})

	t.Run("requires API token", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &coda.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API token is required")
	})

	t.Run("rejects malformed base URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &coda.Config{BaseURL: "not a url", APIToken: testToken})
		require.Error(t, err)
	})

	t.Run("defaults base URL", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &coda.Config{APIToken: testToken})
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultBaseURL, client.BaseURL())
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &coda.Config{BaseURL: "https://coda.example.com/apis/v1/", APIToken: testToken})
		require.NoError(t, err)
		assert.Equal(t, "https://coda.example.com/apis/v1", client.BaseURL())
	})

	t.Run("uses a static token manager", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &coda.Config{APIToken: testToken})
		require.NoError(t, err)

		token, err := client.GetTokenManager().GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testToken, token)
	})
}

func TestNewWithTokenManager(t *testing.T) {
	t.Parallel()

	_, err := NewWithTokenManager(&coda.Config{}, nil)
	require.ErrorIs(t, err, ErrNoTokenManagerConfigured)

	manager := auth.NewStaticTokenManager("managed")
	client, err := NewWithTokenManager(&coda.Config{}, manager)
	require.NoError(t, err)
	assert.Same(t, manager, client.GetTokenManager())
}

func TestClient_SendsBearerToken(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/whoami", http.StatusOK, map[string]interface{}{"name": "Ada", "loginId": "ada@example.com"})

	client := api.client()
	user, err := client.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	calls := api.calls(http.MethodGet, "/whoami")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer "+testToken, calls[0].Header.Get("Authorization"))
	assert.Equal(t, constants.DefaultUserAgent, calls[0].Header.Get("User-Agent"))
}

func TestClient_WhoAmIUnauthorized(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/whoami", http.StatusUnauthorized, map[string]interface{}{
		"statusCode": 401, "statusMessage": "Unauthorized", "message": "Invalid token",
	})

	_, err := api.client().WhoAmI(context.Background())
	require.Error(t, err)
	assert.True(t, coda.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid token")
}

func TestClient_ResolveBrowserLink(t *testing.T) {
	t.Parallel()

	const link = "https://coda.io/d/Roadmap_dAbCdEf/Deleted-Page_suXyZ"

	api := newFakeAPI(t)
	api.handleFunc(http.MethodGet, "/resolveBrowserLink", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, link, r.URL.Query().Get("url"))

		if r.URL.Query().Get("degradeGracefully") != "true" {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"statusCode": 404, "statusMessage": "Not Found", "message": "Page not found",
			})

			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"type": "apiLink",
			"href": "https://coda.io/apis/v1/resolveBrowserLink?url=x",
			"resource": map[string]interface{}{
				"id": "AbCdEf", "type": "doc", "href": "https://coda.io/apis/v1/docs/AbCdEf",
			},
		})
	})

	client := api.client()

	t.Run("deleted page is a not found error", func(t *testing.T) {
		t.Parallel()

		_, err := client.ResolveBrowserLink(context.Background(), link, false)
		require.Error(t, err)
		assert.True(t, coda.IsNotFound(err))
		assert.Equal(t, http.StatusNotFound, coda.StatusCode(err))
	})

	t.Run("degrade gracefully resolves to the doc", func(t *testing.T) {
		t.Parallel()

		resolved, err := client.ResolveBrowserLink(context.Background(), link, true)
		require.NoError(t, err)
		assert.Equal(t, coda.ResourceTypeDoc, resolved.Resource.Type)
		assert.Equal(t, "AbCdEf", resolved.Resource.ID)
	})

	t.Run("empty link", func(t *testing.T) {
		t.Parallel()

		_, err := client.ResolveBrowserLink(context.Background(), "", true)
		require.ErrorIs(t, err, coda.ErrIdentifierRequired)
	})
}

func TestClient_Categories(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/categories", http.StatusOK, map[string]interface{}{
		"items": []map[string]string{{"name": "Project management"}, {"name": "Education"}},
	})

	names, err := api.client().Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Project management", "Education"}, names)
}

func TestClient_DocsIsStable(t *testing.T) {
	t.Parallel()

	client := newFakeAPI(t).client()
	assert.Same(t, client.Docs(), client.Docs())
}
