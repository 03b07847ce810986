package coda_test

import (
	"testing"
	"time"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  coda.Config
		wantErr string
	}{
		{
			name:   "token only",
			config: coda.Config{APIToken: "secret"},
		},
		{
			name: "full config",
			config: coda.Config{
				BaseURL:      "https://coda.io/apis/v1",
				APIToken:     "secret",
				HTTPTimeout:  10 * time.Second,
				RetryMax:     3,
				RetryWaitMin: time.Second,
				RetryWaitMax: 5 * time.Second,
			},
		},
		{
			name:    "missing token",
			config:  coda.Config{},
			wantErr: "APIToken",
		},
		{
			name:    "bad base url",
			config:  coda.Config{APIToken: "secret", BaseURL: "::not a url::"},
			wantErr: "BaseURL",
		},
		{
			name:    "negative retries",
			config:  coda.Config{APIToken: "secret", RetryMax: -1},
			wantErr: "RetryMax",
		},
		{
			name:    "wait max below wait min",
			config:  coda.Config{APIToken: "secret", RetryWaitMin: 5 * time.Second, RetryWaitMax: time.Second},
			wantErr: "RetryWaitMax",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
