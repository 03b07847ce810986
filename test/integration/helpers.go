//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/mackiedrew/coda-client/pkg/codaclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIURL   string
	APIToken string
	// DocID and Table name a scratch table with Name (text) and Check (number) columns.
	DocID string
	Table string
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIURL:   os.Getenv("CODA_API_URL"),
		APIToken: os.Getenv("CODA_API_TOKEN"),
		DocID:    os.Getenv("CODA_TEST_DOC"),
		Table:    os.Getenv("CODA_TEST_TABLE"),
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIToken == "" {
		t.Skip("CODA_API_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingTable skips test when no scratch table is configured
func (config *TestConfig) SkipIfMissingTable(t *testing.T) {
	t.Helper()
	config.SkipIfMissingConfig(t)

	if config.DocID == "" || config.Table == "" {
		t.Skip("CODA_TEST_DOC or CODA_TEST_TABLE not set, skipping integration test")
	}
}

// NewClient builds a client against the configured API
func (config *TestConfig) NewClient(t *testing.T) coda.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := codaclient.New(ctx, &coda.Config{
		BaseURL:  config.APIURL,
		APIToken: config.APIToken,
		RetryMax: 3,
	})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return client
}
