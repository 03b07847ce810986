package client

import (
	"context"
	"fmt"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// ControlsClient implements coda.ControlsClient.
type ControlsClient struct {
	backend *backend
	docID   string
}

// NewControlsClient creates a controls client bound to a doc.
func NewControlsClient(b *backend, docID string) *ControlsClient {
	return &ControlsClient{backend: b, docID: docID}
}

// List implements coda.ControlsClient.List.
func (c *ControlsClient) List(ctx context.Context, opts *coda.SortedListOptions) (*coda.ListResponse[coda.ControlHandle], error) {
	if err := requireID("doc", c.docID); err != nil {
		return nil, err
	}

	path := docPath(c.docID, constants.PathSegmentControls)

	list, err := getJSON[coda.ListResponse[coda.Control]](ctx, c.backend, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing controls: %w", err)
	}

	return bindList(list, func(control *coda.Control) coda.ControlHandle {
		return c.Handle(control.ID).Set(control)
	}), nil
}

// Get implements coda.ControlsClient.Get.
func (c *ControlsClient) Get(ctx context.Context, controlIDOrName string) (coda.ControlHandle, error) {
	handle := c.Handle(controlIDOrName)

	if _, err := handle.Get(ctx); err != nil {
		return nil, err
	}

	return handle, nil
}

// Handle implements coda.ControlsClient.Handle.
func (c *ControlsClient) Handle(controlIDOrName string) coda.ControlHandle {
	return &ControlHandle{backend: c.backend, docID: c.docID, id: controlIDOrName}
}

// ControlHandle implements coda.ControlHandle.
type ControlHandle struct {
	backend *backend
	docID   string
	id      string
	cache   snapshot[coda.Control]
}

// ID implements coda.Handle.ID.
func (h *ControlHandle) ID() string { return h.id }

// DocID implements coda.ControlHandle.DocID.
func (h *ControlHandle) DocID() string { return h.docID }

// Snapshot implements coda.Handle.Snapshot.
func (h *ControlHandle) Snapshot() *coda.Control { return h.cache.get() }

// Hydrated implements coda.Handle.Hydrated.
func (h *ControlHandle) Hydrated() bool { return h.cache.hydrated() }

// Get implements coda.Handle.Get.
func (h *ControlHandle) Get(ctx context.Context) (*coda.Control, error) {
	if err := requireID("doc", h.docID); err != nil {
		return nil, err
	}

	if err := requireID("control", h.id); err != nil {
		return nil, err
	}

	path := docPath(h.docID, constants.PathSegmentControls, escape(h.id))

	control, err := getJSON[coda.Control](ctx, h.backend, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting control %s: %w", h.id, err)
	}

	h.cache.set(control)

	return control, nil
}

// Refresh implements coda.Handle.Refresh.
func (h *ControlHandle) Refresh(ctx context.Context) (*coda.Control, error) {
	return h.Get(ctx)
}

// Set implements coda.ControlHandle.Set.
func (h *ControlHandle) Set(control *coda.Control) coda.ControlHandle {
	h.cache.set(control)

	return h
}

// SetFrom implements coda.ControlHandle.SetFrom.
func (h *ControlHandle) SetFrom(other coda.ControlHandle) coda.ControlHandle {
	if other == nil {
		return h.Set(nil)
	}

	return h.Set(other.Snapshot())
}

var (
	_ coda.ControlsClient = (*ControlsClient)(nil)
	_ coda.ControlHandle  = (*ControlHandle)(nil)
)
