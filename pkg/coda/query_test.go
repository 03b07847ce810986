package coda_test

import (
	"encoding/json"
	"testing"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    *coda.RowQuery
		expected string
	}{
		{name: "nil query", query: nil, expected: ""},
		{name: "by name with string", query: coda.QueryByColumnName("Name", "Row 2"), expected: `"Name":"Row 2"`},
		{name: "by id with number", query: coda.QueryByColumnID("c-123", 10), expected: `c-123:10`},
		{name: "by id with float", query: coda.QueryByColumnID("c-123", 2.5), expected: `c-123:2.5`},
		{name: "by id with bool", query: coda.QueryByColumnID("c-done", true), expected: `c-done:true`},
		{name: "by name with json number", query: coda.QueryByColumnName("Check", json.Number("42")), expected: `"Check":42`},
		{name: "string needing escapes", query: coda.QueryByColumnName(`Say "hi"`, `a<b`), expected: `"Say \"hi\"":"a<b"`},
		{name: "by id with cell value", query: coda.QueryByColumnID("c-1", coda.StringValue("x")), expected: `c-1:"x"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := coda.ConstructQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConstructQuery_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query *coda.RowQuery
	}{
		{name: "missing type", query: &coda.RowQuery{ColumnID: "c-1", Value: 1}},
		{name: "by id without id", query: &coda.RowQuery{Type: coda.RowQueryByID, ColumnName: "Name", Value: 1}},
		{name: "by name without name", query: &coda.RowQuery{Type: coda.RowQueryByName, Value: "x"}},
		{name: "unsupported value", query: coda.QueryByColumnID("c-1", []string{"a"})},
		{name: "rich cell value", query: coda.QueryByColumnID("c-1", coda.ArrayValue())},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := coda.ConstructQuery(tt.query)
			require.ErrorIs(t, err, coda.ErrInvalidRowQuery)
		})
	}
}

func TestRowListOptions_ToValues(t *testing.T) {
	t.Parallel()

	opts := &coda.RowListOptions{
		ListOptions:    coda.ListOptions{Limit: 10, PageToken: "tok"},
		Query:          coda.QueryByColumnName("Name", "Row 2"),
		SortBy:         coda.RowSortNatural,
		UseColumnNames: true,
		ValueFormat:    coda.ValueFormatSimple,
		VisibleOnly:    coda.Bool(false),
		SyncToken:      "sync",
	}

	values, err := opts.ToValues()
	require.NoError(t, err)
	assert.Equal(t, "10", values.Get("limit"))
	assert.Equal(t, "tok", values.Get("pageToken"))
	assert.Equal(t, `"Name":"Row 2"`, values.Get("query"))
	assert.Equal(t, "natural", values.Get("sortBy"))
	assert.Equal(t, "true", values.Get("useColumnNames"))
	assert.Equal(t, "simple", values.Get("valueFormat"))
	assert.Equal(t, "false", values.Get("visibleOnly"))
	assert.Equal(t, "sync", values.Get("syncToken"))

	empty, err := (&coda.RowListOptions{}).ToValues()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRowGetOptions_DefaultsToRich(t *testing.T) {
	t.Parallel()

	var opts *coda.RowGetOptions
	assert.Equal(t, "rich", opts.ToValues().Get("valueFormat"))
	assert.Empty(t, opts.ToValues().Get("useColumnNames"))

	custom := &coda.RowGetOptions{UseColumnNames: true, ValueFormat: coda.ValueFormatSimpleWithArray}
	assert.Equal(t, "simpleWithArrays", custom.ToValues().Get("valueFormat"))
	assert.Equal(t, "true", custom.ToValues().Get("useColumnNames"))
}

func TestTableListOptions_AlwaysRequestsUpdatedLayouts(t *testing.T) {
	t.Parallel()

	var opts *coda.TableListOptions
	assert.Equal(t, "true", opts.ToValues().Get("useUpdatedTableLayouts"))

	withTypes := &coda.TableListOptions{TableTypes: []coda.TableType{coda.TableTypeTable, coda.TableTypeView}}
	assert.Equal(t, "table,view", withTypes.ToValues().Get("tableTypes"))
}

func TestDocListOptions_ToValues(t *testing.T) {
	t.Parallel()

	opts := &coda.DocListOptions{
		IsOwner:     coda.Bool(true),
		Query:       "roadmap",
		WorkspaceID: "ws-1",
	}

	values := opts.ToValues()
	assert.Equal(t, "true", values.Get("isOwner"))
	assert.Equal(t, "roadmap", values.Get("query"))
	assert.Equal(t, "ws-1", values.Get("workspaceId"))
	assert.Empty(t, values.Get("isPublished"))
}
