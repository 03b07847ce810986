package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mackiedrew/coda-client/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{name: "nil token", token: nil, expected: false},
		{name: "empty access token", token: &auth.Token{}, expected: false},
		{name: "token without expiry", token: &auth.Token{AccessToken: "test-token"}, expected: true},
		{
			name:     "token with future expiry",
			token:    &auth.Token{AccessToken: "test-token", ExpiresAt: time.Now().Add(time.Hour)},
			expected: true,
		},
		{
			name:     "expired token",
			token:    &auth.Token{AccessToken: "test-token", ExpiresAt: time.Now().Add(-time.Hour)},
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func TestTokenStore(t *testing.T) {
	t.Parallel()
	t.Run("new store is empty", testNewStoreEmpty)
	t.Run("set and get token", testSetAndGetToken)
	t.Run("clear token", testClearToken)
	t.Run("concurrent access", testConcurrentTokenAccess)
}

func testNewStoreEmpty(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())
}

func testSetAndGetToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	token := &auth.Token{AccessToken: "test-token"}

	store.Set(token)
	token.AccessToken = "mutated"

	retrieved := store.Get()
	require.NotNil(t, retrieved)
	assert.Equal(t, "test-token", retrieved.AccessToken)
}

func testClearToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&auth.Token{AccessToken: "test-token"})
	assert.NotNil(t, store.Get())

	store.Clear()
	assert.Nil(t, store.Get())
}

func testConcurrentTokenAccess(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			store.Set(&auth.Token{AccessToken: "test-token"})
		}()

		go func() {
			defer wg.Done()
			_ = store.Get()
		}()
	}

	wg.Wait()
	assert.Equal(t, "test-token", store.Get().AccessToken)
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("static-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)

	require.ErrorIs(t, manager.RefreshToken(context.Background()), auth.ErrStaticTokenCannotRefresh)

	manager.SetToken("rotated", time.Time{})
	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated", token)

	empty := auth.NewStaticTokenManager("")
	_, err = empty.GetToken(context.Background())
	require.ErrorIs(t, err, auth.ErrNoToken)
}
