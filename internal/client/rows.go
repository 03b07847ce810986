package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/internal/http"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// RowsClient implements coda.RowsClient.
type RowsClient struct {
	backend *backend
	docID   string
	tableID string
}

// NewRowsClient creates a rows client bound to a table.
func NewRowsClient(b *backend, docID, tableIDOrName string) *RowsClient {
	return &RowsClient{backend: b, docID: docID, tableID: tableIDOrName}
}

func (c *RowsClient) path(rest ...string) string {
	segments := append([]string{constants.PathSegmentTables, escape(c.tableID), constants.PathSegmentRows}, rest...)

	return docPath(c.docID, segments...)
}

// List implements coda.RowsClient.List. Listed handles keep the column
// addressing and value format of the listing.
func (c *RowsClient) List(ctx context.Context, opts *coda.RowListOptions) (*coda.ListResponse[coda.RowHandle], error) {
	if err := requireTable(c.docID, c.tableID); err != nil {
		return nil, err
	}

	query, err := opts.ToValues()
	if err != nil {
		return nil, fmt.Errorf("building row query: %w", err)
	}

	list, err := getJSON[coda.ListResponse[coda.Row]](ctx, c.backend, c.path(), query)
	if err != nil {
		return nil, fmt.Errorf("listing rows: %w", err)
	}

	// A listing without valueFormat is rendered simple, unlike a single row.
	getOpts := &coda.RowGetOptions{ValueFormat: coda.ValueFormatSimple}
	if opts != nil {
		getOpts.UseColumnNames = opts.UseColumnNames

		if opts.ValueFormat != "" {
			getOpts.ValueFormat = opts.ValueFormat
		}
	}

	return bindList(list, func(row *coda.Row) coda.RowHandle {
		return c.Handle(row.ID, getOpts).Set(row)
	}), nil
}

// Get implements coda.RowsClient.Get.
func (c *RowsClient) Get(ctx context.Context, rowIDOrName string, opts *coda.RowGetOptions) (coda.RowHandle, error) {
	handle := c.Handle(rowIDOrName, opts)

	if _, err := handle.Get(ctx); err != nil {
		return nil, err
	}

	return handle, nil
}

// Handle implements coda.RowsClient.Handle.
func (c *RowsClient) Handle(rowIDOrName string, opts *coda.RowGetOptions) coda.RowHandle {
	handle := &RowHandle{rows: c, id: rowIDOrName}
	if opts != nil {
		handle.opts = *opts
	}

	return handle
}

// Upsert implements coda.RowsClient.Upsert.
func (c *RowsClient) Upsert(ctx context.Context, req *coda.RowUpsertRequest, disableParsing bool) (*coda.RowsUpsertResult, error) {
	if err := requireTable(c.docID, c.tableID); err != nil {
		return nil, err
	}

	if req == nil {
		req = &coda.RowUpsertRequest{}
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid row upsert request: %w", err)
	}

	resp, err := c.backend.httpClient.PostWithQuery(ctx, c.path(), parsingQuery(disableParsing), req)
	if err != nil {
		return nil, fmt.Errorf("upserting rows: %w", err)
	}

	result, err := decodeJSON[coda.RowsUpsertResult](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing upsert response: %w", err)
	}

	result.Mutation = newMutationHandle(c.backend, result.RequestID)

	return result, nil
}

// Delete implements coda.RowsClient.Delete.
func (c *RowsClient) Delete(ctx context.Context, rowIDs []string) (*coda.RowsDeleteResult, error) {
	if err := requireTable(c.docID, c.tableID); err != nil {
		return nil, err
	}

	req := &coda.RowsDeleteRequest{RowIDs: rowIDs}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rows delete request: %w", err)
	}

	resp, err := c.backend.httpClient.DeleteWithBody(ctx, c.path(), req)
	if err != nil {
		return nil, fmt.Errorf("deleting rows: %w", err)
	}

	result, err := decodeJSON[coda.RowsDeleteResult](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing delete response: %w", err)
	}

	result.Mutation = newMutationHandle(c.backend, result.RequestID)

	return result, nil
}

func parsingQuery(disableParsing bool) url.Values {
	if !disableParsing {
		return nil
	}

	query := url.Values{}
	query.Set(constants.QueryDisableParsing, constants.BooleanTrue)

	return query
}

// RowHandle implements coda.RowHandle.
type RowHandle struct {
	rows  *RowsClient
	id    string
	opts  coda.RowGetOptions
	cache snapshot[coda.Row]
}

func (h *RowHandle) path(rest ...string) string {
	return h.rows.path(append([]string{escape(h.id)}, rest...)...)
}

func (h *RowHandle) validate() error {
	if err := requireTable(h.rows.docID, h.rows.tableID); err != nil {
		return err
	}

	return requireID("row", h.id)
}

// ID implements coda.Handle.ID.
func (h *RowHandle) ID() string { return h.id }

// DocID implements coda.RowHandle.DocID.
func (h *RowHandle) DocID() string { return h.rows.docID }

// TableIDOrName implements coda.RowHandle.TableIDOrName.
func (h *RowHandle) TableIDOrName() string { return h.rows.tableID }

// Snapshot implements coda.Handle.Snapshot.
func (h *RowHandle) Snapshot() *coda.Row { return h.cache.get() }

// Hydrated implements coda.Handle.Hydrated.
func (h *RowHandle) Hydrated() bool { return h.cache.hydrated() }

// Get implements coda.Handle.Get.
func (h *RowHandle) Get(ctx context.Context) (*coda.Row, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	row, err := getJSON[coda.Row](ctx, h.rows.backend, h.path(), h.opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("getting row %s: %w", h.id, err)
	}

	h.cache.set(row)

	return row, nil
}

// Refresh implements coda.Handle.Refresh.
func (h *RowHandle) Refresh(ctx context.Context) (*coda.Row, error) {
	return h.Get(ctx)
}

// Set implements coda.RowHandle.Set.
func (h *RowHandle) Set(row *coda.Row) coda.RowHandle {
	h.cache.set(row)

	return h
}

// SetFrom implements coda.RowHandle.SetFrom.
func (h *RowHandle) SetFrom(other coda.RowHandle) coda.RowHandle {
	if other == nil {
		return h.Set(nil)
	}

	return h.Set(other.Snapshot())
}

// Update implements coda.RowHandle.Update.
func (h *RowHandle) Update(ctx context.Context, req *coda.RowUpdateRequest, disableParsing bool) (*coda.RowMutationResult, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	if req == nil {
		req = &coda.RowUpdateRequest{}
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid row update request: %w", err)
	}

	resp, err := h.rows.backend.httpClient.PutWithQuery(ctx, h.path(), parsingQuery(disableParsing), req)
	if err != nil {
		return nil, fmt.Errorf("updating row %s: %w", h.id, err)
	}

	return h.mutationResult(resp)
}

// Delete implements coda.RowHandle.Delete.
func (h *RowHandle) Delete(ctx context.Context) (*coda.RowMutationResult, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	resp, err := h.rows.backend.httpClient.Delete(ctx, h.path())
	if err != nil {
		return nil, fmt.Errorf("deleting row %s: %w", h.id, err)
	}

	return h.mutationResult(resp)
}

// PushButton implements coda.RowHandle.PushButton.
func (h *RowHandle) PushButton(ctx context.Context, columnIDOrName string) (*coda.PushButtonResult, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	if err := requireID("button column", columnIDOrName); err != nil {
		return nil, err
	}

	resp, err := h.rows.backend.httpClient.Post(ctx, h.path(constants.PathSegmentButtons, escape(columnIDOrName)), nil)
	if err != nil {
		return nil, fmt.Errorf("pushing button %s on row %s: %w", columnIDOrName, h.id, err)
	}

	result, err := decodeJSON[coda.PushButtonResult](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing button response: %w", err)
	}

	result.Mutation = newMutationHandle(h.rows.backend, result.RequestID)

	return result, nil
}

func (h *RowHandle) mutationResult(resp *http.Response) (*coda.RowMutationResult, error) {
	result, err := decodeJSON[coda.RowMutationResult](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing row mutation response: %w", err)
	}

	result.Mutation = newMutationHandle(h.rows.backend, result.RequestID)

	return result, nil
}

var (
	_ coda.RowsClient = (*RowsClient)(nil)
	_ coda.RowHandle  = (*RowHandle)(nil)
)
