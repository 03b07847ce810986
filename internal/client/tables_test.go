package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesClient_List(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/docs/doc-1/tables", http.StatusOK, map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "grid-1", "type": "table", "tableType": "table", "name": "Tasks"},
			map[string]interface{}{"id": "view-1", "type": "table", "tableType": "view", "name": "Open tasks",
				"parentTable": map[string]interface{}{"id": "grid-1", "type": "table", "tableType": "table", "name": "Tasks"}},
		},
	})

	tables := api.client().Docs().Handle("doc-1").Tables()

	list, err := tables.List(context.Background(), &coda.TableListOptions{
		TableTypes: []coda.TableType{coda.TableTypeTable, coda.TableTypeView},
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)

	view := list.Items[1].Snapshot()
	assert.Equal(t, coda.TableTypeView, view.TableType)
	require.NotNil(t, view.ParentTable)
	assert.Equal(t, "grid-1", view.ParentTable.ID)

	query := api.calls(http.MethodGet, "/docs/doc-1/tables")[0].Query
	assert.Equal(t, "true", query.Get("useUpdatedTableLayouts"))
	assert.Equal(t, "table,view", query.Get("tableTypes"))

	_, err = tables.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "true", api.calls(http.MethodGet, "/docs/doc-1/tables")[1].Query.Get("useUpdatedTableLayouts"))
}

func TestTableHandle_Get(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/docs/doc-1/tables/Tasks", http.StatusOK, map[string]interface{}{
		"id": "grid-1", "type": "table", "tableType": "table", "name": "Tasks", "rowCount": 12, "layout": "default",
	})

	table, err := api.client().Docs().Handle("doc-1").Tables().Get(context.Background(), "Tasks")
	require.NoError(t, err)
	assert.Equal(t, "Tasks", table.ID())
	assert.Equal(t, 12, table.Snapshot().RowCount)
	assert.Equal(t, "doc-1", table.DocID())
	assert.Equal(t, "true", api.calls(http.MethodGet, "/docs/doc-1/tables/Tasks")[0].Query.Get("useUpdatedTableLayouts"))

	assert.Same(t, table.Rows(), table.Rows())
	assert.Same(t, table.Columns(), table.Columns())
}

func TestColumnsClient(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/docs/doc-1/tables/grid-1/columns", http.StatusOK, map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"id": "c-1", "type": "column", "name": "Task", "display": true,
				"format": map[string]interface{}{"type": "text", "isArray": false}},
			map[string]interface{}{"id": "c-2", "type": "column", "name": "Cost",
				"format": map[string]interface{}{"type": "currency", "isArray": false, "currencyCode": "EUR", "precision": 2}},
		},
	})
	api.handle(http.MethodGet, "/docs/doc-1/tables/grid-1/columns/Cost", http.StatusOK, map[string]interface{}{
		"id": "c-2", "type": "column", "name": "Cost", "calculated": true, "formula": "thisRow.Price * 2",
		"format": map[string]interface{}{"type": "currency", "isArray": false},
	})

	columns := api.client().Docs().Handle("doc-1").Tables().Handle("grid-1").Columns()

	list, err := columns.List(context.Background(), &coda.ColumnListOptions{VisibleOnly: coda.Bool(true)})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "true", api.calls(http.MethodGet, "/docs/doc-1/tables/grid-1/columns")[0].Query.Get("visibleOnly"))

	cost := list.Items[1].Snapshot()
	assert.Equal(t, coda.ColumnTypeCurrency, cost.Format.Type)
	assert.Contains(t, cost.Format.Extra, "currencyCode")
	assert.Equal(t, "grid-1", list.Items[1].TableIDOrName())

	column, err := columns.Get(context.Background(), "Cost")
	require.NoError(t, err)
	assert.True(t, column.Snapshot().Calculated)
	assert.Equal(t, "thisRow.Price * 2", column.Snapshot().Formula)
}

func TestTablesClient_GetSibling(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/docs/doc-1/tables/grid-2", http.StatusOK, map[string]interface{}{
		"id": "grid-2", "type": "table", "tableType": "table", "name": "Archive",
	})

	tables := api.client().Docs().Handle("doc-1").Tables()
	current := tables.Handle("grid-1").Set(&coda.Table{ID: "grid-1", Name: "Tasks"})

	sibling, err := tables.Get(context.Background(), "grid-2")
	require.NoError(t, err)
	assert.Equal(t, "grid-2", sibling.ID())
	assert.Equal(t, "doc-1", sibling.DocID())
	assert.Equal(t, "Archive", sibling.Snapshot().Name)

	assert.Equal(t, "grid-1", current.ID())
	assert.Equal(t, "Tasks", current.Snapshot().Name)
}
