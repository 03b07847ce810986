// Package auth supplies the bearer token sent with every API request.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoToken                  = errors.New("no API token available")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// TokenManager hands out the current API token.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Token is an API token. Coda tokens normally carry no expiry; a zero
// ExpiresAt means the token does not expire.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token can be sent.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Before(t.ExpiresAt)
}

// TokenStore is a goroutine-safe holder of one token.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns a copy of the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return nil
	}

	t := *s.token

	return &t
}

// Set stores a copy of token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == nil {
		s.token = nil

		return
	}

	t := *token
	s.token = &t
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.Set(nil)
}

// StaticTokenManager serves a fixed token.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a manager serving token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	store := NewTokenStore()
	store.Set(&Token{AccessToken: token})

	return &StaticTokenManager{store: store}
}

// GetToken returns the token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if !token.Valid() {
		return "", ErrNoToken
	}

	return token.AccessToken, nil
}

// RefreshToken always fails: a static token has no source to refresh from.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken replaces the token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}
