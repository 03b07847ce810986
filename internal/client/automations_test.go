package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomationsClient_Trigger(t *testing.T) {
	t.Parallel()

	const path = "/docs/doc-1/hooks/automation/grid-auto-1"

	api := newFakeAPI(t)
	api.handle(http.MethodPost, path, http.StatusAccepted, map[string]interface{}{"requestId": "req-auto"})

	automations := api.client().Docs().Handle("doc-1").Automations()

	mutation, err := automations.Trigger(context.Background(), "grid-auto-1", map[string]interface{}{"message": "deploy"})
	require.NoError(t, err)
	assert.Equal(t, "req-auto", mutation.RequestID())
	assert.Equal(t, "deploy", decodeBody(t, api.calls(http.MethodPost, path)[0])["message"])

	_, err = automations.Trigger(context.Background(), "grid-auto-1", nil)
	require.NoError(t, err)
	assert.Empty(t, decodeBody(t, api.calls(http.MethodPost, path)[1]))

	_, err = automations.Trigger(context.Background(), "", nil)
	require.Error(t, err)
}
