package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// TablesClient implements coda.TablesClient.
type TablesClient struct {
	backend *backend
	docID   string
}

// NewTablesClient creates a tables client bound to a doc.
func NewTablesClient(b *backend, docID string) *TablesClient {
	return &TablesClient{backend: b, docID: docID}
}

// List implements coda.TablesClient.List. Views are included unless
// opts.TableTypes narrows the listing.
func (c *TablesClient) List(ctx context.Context, opts *coda.TableListOptions) (*coda.ListResponse[coda.TableHandle], error) {
	if err := requireID("doc", c.docID); err != nil {
		return nil, err
	}

	path := docPath(c.docID, constants.PathSegmentTables)

	list, err := getJSON[coda.ListResponse[coda.Table]](ctx, c.backend, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	return bindList(list, func(table *coda.Table) coda.TableHandle {
		return c.Handle(table.ID).Set(table)
	}), nil
}

// Get implements coda.TablesClient.Get.
func (c *TablesClient) Get(ctx context.Context, tableIDOrName string) (coda.TableHandle, error) {
	handle := c.Handle(tableIDOrName)

	if _, err := handle.Get(ctx); err != nil {
		return nil, err
	}

	return handle, nil
}

// Handle implements coda.TablesClient.Handle.
func (c *TablesClient) Handle(tableIDOrName string) coda.TableHandle {
	return newTableHandle(c.backend, c.docID, tableIDOrName)
}

// TableHandle implements coda.TableHandle.
type TableHandle struct {
	backend *backend
	docID   string
	id      string
	cache   snapshot[coda.Table]

	rows    *RowsClient
	columns *ColumnsClient
}

func newTableHandle(b *backend, docID, tableIDOrName string) *TableHandle {
	return &TableHandle{
		backend: b,
		docID:   docID,
		id:      tableIDOrName,
		rows:    NewRowsClient(b, docID, tableIDOrName),
		columns: NewColumnsClient(b, docID, tableIDOrName),
	}
}

// ID implements coda.Handle.ID.
func (h *TableHandle) ID() string { return h.id }

// DocID implements coda.TableHandle.DocID.
func (h *TableHandle) DocID() string { return h.docID }

// Snapshot implements coda.Handle.Snapshot.
func (h *TableHandle) Snapshot() *coda.Table { return h.cache.get() }

// Hydrated implements coda.Handle.Hydrated.
func (h *TableHandle) Hydrated() bool { return h.cache.hydrated() }

// Get implements coda.Handle.Get.
func (h *TableHandle) Get(ctx context.Context) (*coda.Table, error) {
	if err := requireTable(h.docID, h.id); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set(constants.QueryUseUpdatedTableLayouts, constants.BooleanTrue)

	path := docPath(h.docID, constants.PathSegmentTables, escape(h.id))

	table, err := getJSON[coda.Table](ctx, h.backend, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting table %s: %w", h.id, err)
	}

	h.cache.set(table)

	return table, nil
}

// Refresh implements coda.Handle.Refresh.
func (h *TableHandle) Refresh(ctx context.Context) (*coda.Table, error) {
	return h.Get(ctx)
}

// Set implements coda.TableHandle.Set.
func (h *TableHandle) Set(table *coda.Table) coda.TableHandle {
	h.cache.set(table)

	return h
}

// SetFrom implements coda.TableHandle.SetFrom.
func (h *TableHandle) SetFrom(other coda.TableHandle) coda.TableHandle {
	if other == nil {
		return h.Set(nil)
	}

	return h.Set(other.Snapshot())
}

// Rows implements coda.TableHandle.Rows.
func (h *TableHandle) Rows() coda.RowsClient { return h.rows }

// Columns implements coda.TableHandle.Columns.
func (h *TableHandle) Columns() coda.ColumnsClient { return h.columns }

var (
	_ coda.TablesClient = (*TablesClient)(nil)
	_ coda.TableHandle  = (*TableHandle)(nil)
)
