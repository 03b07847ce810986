package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
	ErrNoTokenLoader     = errors.New("no token loader configured")
)

// ConfigPersister writes a token back to the CLI configuration.
type ConfigPersister interface {
	UpdateAPIToken(apiURL, token string) error
}

// TokenLoader reads the token currently stored in the configuration.
type TokenLoader func() (string, error)

// ConfigTokenManager serves the token kept in the CLI configuration. The token
// is loaded lazily, RefreshToken reloads it, and SetToken persists a new one.
type ConfigTokenManager struct {
	store     *TokenStore
	loader    TokenLoader
	persister ConfigPersister
	apiURL    string
	mutex     sync.Mutex
}

// NewConfigTokenManager creates a config-backed token manager for apiURL.
func NewConfigTokenManager(loader TokenLoader, persister ConfigPersister, apiURL string) *ConfigTokenManager {
	return &ConfigTokenManager{
		store:     NewTokenStore(),
		loader:    loader,
		persister: persister,
		apiURL:    apiURL,
	}
}

// GetToken returns the cached token, loading it from the configuration on first use.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	if err := m.RefreshToken(ctx); err != nil {
		return "", err
	}

	token := m.store.Get()
	if !token.Valid() {
		return "", ErrNoToken
	}

	return token.AccessToken, nil
}

// RefreshToken reloads the token from the configuration.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.loader == nil {
		return ErrNoTokenLoader
	}

	token, err := m.loader()
	if err != nil {
		return fmt.Errorf("loading API token: %w", err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}

	m.store.Set(&Token{AccessToken: token})

	return nil
}

// SetToken caches token and writes it to the configuration. Persistence
// failures are reported on stderr and do not invalidate the cached token.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})

	if err := m.persistToken(token); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist API token: %v\n", err)
	}
}

// persistToken saves the token to config.
func (m *ConfigTokenManager) persistToken(token string) error {
	if m.persister == nil {
		return ErrNoConfigPersister
	}

	if err := m.persister.UpdateAPIToken(m.apiURL, token); err != nil {
		return fmt.Errorf("failed to update API token: %w", err)
	}

	return nil
}
