package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlsClient(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/docs/doc-1/controls", http.StatusOK, map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "ctrl-1", "type": "control", "name": "Show done", "controlType": "checkbox"},
		},
	})
	api.handle(http.MethodGet, "/docs/doc-1/controls/Budget", http.StatusOK, map[string]interface{}{
		"id": "ctrl-2", "type": "control", "name": "Budget", "controlType": "slider", "value": 250,
	})

	controls := api.client().Docs().Handle("doc-1").Controls()

	list, err := controls.List(context.Background(), &coda.SortedListOptions{SortBy: "name"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, coda.ControlType("checkbox"), list.Items[0].Snapshot().ControlType)
	assert.Equal(t, "name", api.calls(http.MethodGet, "/docs/doc-1/controls")[0].Query.Get("sortBy"))

	control, err := controls.Get(context.Background(), "Budget")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", control.DocID())

	budget, ok := control.Snapshot().Value.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(250), budget)
}

func TestFormulasClient(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/docs/doc-1/formulas", http.StatusOK, map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"id": "f-1", "type": "formula", "name": "Total"}},
	})
	api.handle(http.MethodGet, "/docs/doc-1/formulas/f-1", http.StatusOK, map[string]interface{}{
		"id": "f-1", "type": "formula", "name": "Total", "value": []interface{}{"a", "b"},
	})

	formulas := api.client().Docs().Handle("doc-1").Formulas()

	list, err := formulas.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	formula := list.Items[0]
	assert.Equal(t, "Total", formula.Snapshot().Name)

	refreshed, err := formula.Refresh(context.Background())
	require.NoError(t, err)

	items, ok := refreshed.Value.AsArray()
	require.True(t, ok)
	assert.Len(t, items, 2)

	copied := formulas.Handle("f-1").SetFrom(formula)
	assert.True(t, copied.Hydrated())
	assert.Equal(t, coda.KindArray, copied.Snapshot().Value.Kind())
}
