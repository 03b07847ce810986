// Package codaclient provides the main entry point for creating Coda API clients
package codaclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mackiedrew/coda-client/internal/client"
	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// New creates a new Coda API client. The caller's config is not modified.
func New(ctx context.Context, config *coda.Config) (coda.Client, error) {
	if config == nil {
		return nil, coda.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = NormalizeBaseURL(config.BaseURL)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeBaseURL trims trailing slashes and assumes https when no scheme is
// given. An empty URL yields the public API root.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// NewWithToken creates a client for the public API root.
func NewWithToken(ctx context.Context, token string) (coda.Client, error) {
	return New(ctx, &coda.Config{APIToken: token})
}

// NewFromEnv creates a client from CODA_API_TOKEN and, when set, CODA_API_URL.
func NewFromEnv(ctx context.Context) (coda.Client, error) {
	token := os.Getenv(constants.EnvAPIToken)
	if token == "" {
		return nil, fmt.Errorf("%w: set %s", coda.ErrAPITokenRequired, constants.EnvAPIToken)
	}

	return New(ctx, &coda.Config{
		BaseURL:  os.Getenv(constants.EnvAPIURL),
		APIToken: token,
	})
}
