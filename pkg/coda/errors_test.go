package coda_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *coda.APIError
		expected string
	}{
		{
			name:     "with message",
			err:      &coda.APIError{StatusCode: 404, StatusMessage: "Not Found", Message: "Doc does not exist"},
			expected: "coda: 404 Not Found: Doc does not exist",
		},
		{
			name:     "without message",
			err:      &coda.APIError{StatusCode: 401, StatusMessage: "Unauthorized"},
			expected: "coda: 401 Unauthorized",
		},
		{
			name:     "status text fallback",
			err:      &coda.APIError{StatusCode: 429},
			expected: "coda: 429 Too Many Requests",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	t.Run("coda error body", func(t *testing.T) {
		t.Parallel()

		apiErr := coda.ParseAPIError(http.StatusNotFound,
			[]byte(`{"statusCode":404,"statusMessage":"Not Found","message":"Page was deleted"}`))
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "Not Found", apiErr.StatusMessage)
		assert.Equal(t, "Page was deleted", apiErr.Message)
	})

	t.Run("http status wins over body", func(t *testing.T) {
		t.Parallel()

		apiErr := coda.ParseAPIError(http.StatusGone, []byte(`{"statusCode":200,"message":"gone"}`))
		assert.Equal(t, http.StatusGone, apiErr.StatusCode)
		assert.Equal(t, "Gone", apiErr.StatusMessage)
	})

	t.Run("non json body", func(t *testing.T) {
		t.Parallel()

		apiErr := coda.ParseAPIError(http.StatusBadGateway, []byte("upstream exploded"))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "upstream exploded", apiErr.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		apiErr := coda.ParseAPIError(http.StatusUnauthorized, nil)
		assert.Equal(t, "Unauthorized", apiErr.StatusMessage)
		assert.Empty(t, apiErr.Message)
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	wrap := func(code int) error {
		return fmt.Errorf("getting doc: %w", &coda.APIError{StatusCode: code})
	}

	assert.True(t, coda.IsNotFound(wrap(http.StatusNotFound)))
	assert.False(t, coda.IsNotFound(wrap(http.StatusGone)))
	assert.True(t, coda.IsUnauthorized(wrap(http.StatusUnauthorized)))
	assert.True(t, coda.IsForbidden(wrap(http.StatusForbidden)))
	assert.True(t, coda.IsBadRequest(wrap(http.StatusBadRequest)))
	assert.True(t, coda.IsGone(wrap(http.StatusGone)))
	assert.True(t, coda.IsRateLimited(wrap(http.StatusTooManyRequests)))

	assert.Equal(t, http.StatusForbidden, coda.StatusCode(wrap(http.StatusForbidden)))
	assert.Equal(t, 0, coda.StatusCode(coda.ErrConfigRequired))
	assert.False(t, coda.IsNotFound(nil))
	assert.False(t, coda.IsNotFound(coda.ErrConfigRequired))
}
