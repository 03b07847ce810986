package client

import (
	"context"
	"fmt"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// ColumnsClient implements coda.ColumnsClient.
type ColumnsClient struct {
	backend *backend
	docID   string
	tableID string
}

// NewColumnsClient creates a columns client bound to a table.
func NewColumnsClient(b *backend, docID, tableIDOrName string) *ColumnsClient {
	return &ColumnsClient{backend: b, docID: docID, tableID: tableIDOrName}
}

// List implements coda.ColumnsClient.List.
func (c *ColumnsClient) List(ctx context.Context, opts *coda.ColumnListOptions) (*coda.ListResponse[coda.ColumnHandle], error) {
	if err := requireTable(c.docID, c.tableID); err != nil {
		return nil, err
	}

	path := docPath(c.docID, constants.PathSegmentTables, escape(c.tableID), constants.PathSegmentColumns)

	list, err := getJSON[coda.ListResponse[coda.Column]](ctx, c.backend, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}

	return bindList(list, func(column *coda.Column) coda.ColumnHandle {
		return c.Handle(column.ID).Set(column)
	}), nil
}

// Get implements coda.ColumnsClient.Get.
func (c *ColumnsClient) Get(ctx context.Context, columnIDOrName string) (coda.ColumnHandle, error) {
	handle := c.Handle(columnIDOrName)

	if _, err := handle.Get(ctx); err != nil {
		return nil, err
	}

	return handle, nil
}

// Handle implements coda.ColumnsClient.Handle.
func (c *ColumnsClient) Handle(columnIDOrName string) coda.ColumnHandle {
	return &ColumnHandle{backend: c.backend, docID: c.docID, tableID: c.tableID, id: columnIDOrName}
}

// ColumnHandle implements coda.ColumnHandle.
type ColumnHandle struct {
	backend *backend
	docID   string
	tableID string
	id      string
	cache   snapshot[coda.Column]
}

// ID implements coda.Handle.ID.
func (h *ColumnHandle) ID() string { return h.id }

// DocID implements coda.ColumnHandle.DocID.
func (h *ColumnHandle) DocID() string { return h.docID }

// TableIDOrName implements coda.ColumnHandle.TableIDOrName.
func (h *ColumnHandle) TableIDOrName() string { return h.tableID }

// Snapshot implements coda.Handle.Snapshot.
func (h *ColumnHandle) Snapshot() *coda.Column { return h.cache.get() }

// Hydrated implements coda.Handle.Hydrated.
func (h *ColumnHandle) Hydrated() bool { return h.cache.hydrated() }

// Get implements coda.Handle.Get.
func (h *ColumnHandle) Get(ctx context.Context) (*coda.Column, error) {
	if err := requireTable(h.docID, h.tableID); err != nil {
		return nil, err
	}

	if err := requireID("column", h.id); err != nil {
		return nil, err
	}

	path := docPath(h.docID, constants.PathSegmentTables, escape(h.tableID),
		constants.PathSegmentColumns, escape(h.id))

	column, err := getJSON[coda.Column](ctx, h.backend, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting column %s: %w", h.id, err)
	}

	h.cache.set(column)

	return column, nil
}

// Refresh implements coda.Handle.Refresh.
func (h *ColumnHandle) Refresh(ctx context.Context) (*coda.Column, error) {
	return h.Get(ctx)
}

// Set implements coda.ColumnHandle.Set.
func (h *ColumnHandle) Set(column *coda.Column) coda.ColumnHandle {
	h.cache.set(column)

	return h
}

// SetFrom implements coda.ColumnHandle.SetFrom.
func (h *ColumnHandle) SetFrom(other coda.ColumnHandle) coda.ColumnHandle {
	if other == nil {
		return h.Set(nil)
	}

	return h.Set(other.Snapshot())
}

func requireTable(docID, tableIDOrName string) error {
	if err := requireID("doc", docID); err != nil {
		return err
	}

	return requireID("table", tableIDOrName)
}

var (
	_ coda.ColumnsClient = (*ColumnsClient)(nil)
	_ coda.ColumnHandle  = (*ColumnHandle)(nil)
)
