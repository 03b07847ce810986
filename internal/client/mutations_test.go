package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completesAfter serves a mutation status that turns completed on the n-th call.
func completesAfter(n int32, calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		call := atomic.AddInt32(calls, 1)
		writeJSON(w, http.StatusOK, map[string]interface{}{"completed": call >= n})
	}
}

func newWaitClient(t *testing.T, api *fakeAPI, logger coda.Logger) *Client {
	t.Helper()

	client, err := New(context.Background(), &coda.Config{BaseURL: api.server.URL, APIToken: testToken, Logger: logger})
	require.NoError(t, err)

	return client
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestMutationHandle_Wait(t *testing.T) {
	t.Parallel()

	t.Run("completes on the sixth status call", func(t *testing.T) {
		t.Parallel()

		var calls int32

		api := newFakeAPI(t)
		api.handleFunc(http.MethodGet, "/mutationStatus/req-1", completesAfter(6, &calls))

		logger := &testLogger{}
		mutation := newWaitClient(t, api, logger).Mutation("req-1")

		done, err := mutation.Wait(context.Background(), time.Millisecond, 6)
		require.NoError(t, err)
		assert.True(t, done)
		assert.Equal(t, int32(6), atomic.LoadInt32(&calls))
		assert.Equal(t, 5, logger.count("Mutation pending"))
	})

	t.Run("exhausted attempts report false", func(t *testing.T) {
		t.Parallel()

		var calls int32

		api := newFakeAPI(t)
		api.handleFunc(http.MethodGet, "/mutationStatus/req-2", completesAfter(100, &calls))

		done, err := api.client().Mutation("req-2").Wait(context.Background(), time.Millisecond, 3)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("already complete needs one call", func(t *testing.T) {
		t.Parallel()

		var calls int32

		api := newFakeAPI(t)
		api.handleFunc(http.MethodGet, "/mutationStatus/req-3", completesAfter(1, &calls))

		done, err := api.client().Mutation("req-3").Wait(context.Background(), time.Hour, 6)
		require.NoError(t, err)
		assert.True(t, done)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("zero attempts makes no calls", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)

		done, err := api.client().Mutation("req-4").Wait(context.Background(), time.Millisecond, 0)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, 0, api.requestCount())
	})

	t.Run("status error stops the wait", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/mutationStatus/req-5", http.StatusNotFound, map[string]interface{}{
			"statusCode": 404, "statusMessage": "Not Found", "message": "Unknown request id",
		})

		done, err := api.client().Mutation("req-5").Wait(context.Background(), time.Millisecond, 6)
		require.Error(t, err)
		assert.False(t, done)
		assert.True(t, coda.IsNotFound(err))
		assert.Len(t, api.calls(http.MethodGet, "/mutationStatus/req-5"), 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		var calls int32

		api := newFakeAPI(t)
		api.handleFunc(http.MethodGet, "/mutationStatus/req-6", completesAfter(100, &calls))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		done, err := api.client().Mutation("req-6").Wait(ctx, time.Hour, 6)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, done)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestMutationHandle_Status(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/mutationStatus/req-7", http.StatusOK, map[string]interface{}{
		"completed": true, "warning": "Initial page should not be deleted",
	})

	client := api.client()

	status, err := client.Mutation("req-7").Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Completed)
	assert.Equal(t, "Initial page should not be deleted", status.Warning)

	_, err = client.Mutation("").Status(context.Background())
	require.ErrorIs(t, err, coda.ErrEmptyMutationID)
}

func TestWaitAll_WithClientHandles(t *testing.T) {
	t.Parallel()

	var first, second int32

	api := newFakeAPI(t)
	api.handleFunc(http.MethodGet, "/mutationStatus/a", completesAfter(2, &first))
	api.handleFunc(http.MethodGet, "/mutationStatus/b", completesAfter(100, &second))

	client := api.client()

	results, err := coda.WaitAll(context.Background(), time.Millisecond, 3, client.Mutation("a"), client.Mutation("b"))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, results)
}
