package client

import (
	"context"
	"fmt"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// FormulasClient implements coda.FormulasClient.
type FormulasClient struct {
	backend *backend
	docID   string
}

// NewFormulasClient creates a formulas client bound to a doc.
func NewFormulasClient(b *backend, docID string) *FormulasClient {
	return &FormulasClient{backend: b, docID: docID}
}

// List implements coda.FormulasClient.List.
func (c *FormulasClient) List(ctx context.Context, opts *coda.SortedListOptions) (*coda.ListResponse[coda.FormulaHandle], error) {
	if err := requireID("doc", c.docID); err != nil {
		return nil, err
	}

	path := docPath(c.docID, constants.PathSegmentFormulas)

	list, err := getJSON[coda.ListResponse[coda.Formula]](ctx, c.backend, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing formulas: %w", err)
	}

	return bindList(list, func(formula *coda.Formula) coda.FormulaHandle {
		return c.Handle(formula.ID).Set(formula)
	}), nil
}

// Get implements coda.FormulasClient.Get.
func (c *FormulasClient) Get(ctx context.Context, formulaIDOrName string) (coda.FormulaHandle, error) {
	handle := c.Handle(formulaIDOrName)

	if _, err := handle.Get(ctx); err != nil {
		return nil, err
	}

	return handle, nil
}

// Handle implements coda.FormulasClient.Handle.
func (c *FormulasClient) Handle(formulaIDOrName string) coda.FormulaHandle {
	return &FormulaHandle{backend: c.backend, docID: c.docID, id: formulaIDOrName}
}

// FormulaHandle implements coda.FormulaHandle.
type FormulaHandle struct {
	backend *backend
	docID   string
	id      string
	cache   snapshot[coda.Formula]
}

// ID implements coda.Handle.ID.
func (h *FormulaHandle) ID() string { return h.id }

// DocID implements coda.FormulaHandle.DocID.
func (h *FormulaHandle) DocID() string { return h.docID }

// Snapshot implements coda.Handle.Snapshot.
func (h *FormulaHandle) Snapshot() *coda.Formula { return h.cache.get() }

// Hydrated implements coda.Handle.Hydrated.
func (h *FormulaHandle) Hydrated() bool { return h.cache.hydrated() }

// Get implements coda.Handle.Get.
func (h *FormulaHandle) Get(ctx context.Context) (*coda.Formula, error) {
	if err := requireID("doc", h.docID); err != nil {
		return nil, err
	}

	if err := requireID("formula", h.id); err != nil {
		return nil, err
	}

	path := docPath(h.docID, constants.PathSegmentFormulas, escape(h.id))

	formula, err := getJSON[coda.Formula](ctx, h.backend, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting formula %s: %w", h.id, err)
	}

	h.cache.set(formula)

	return formula, nil
}

// Refresh implements coda.Handle.Refresh.
func (h *FormulaHandle) Refresh(ctx context.Context) (*coda.Formula, error) {
	return h.Get(ctx)
}

// Set implements coda.FormulaHandle.Set.
func (h *FormulaHandle) Set(formula *coda.Formula) coda.FormulaHandle {
	h.cache.set(formula)

	return h
}

// SetFrom implements coda.FormulaHandle.SetFrom.
func (h *FormulaHandle) SetFrom(other coda.FormulaHandle) coda.FormulaHandle {
	if other == nil {
		return h.Set(nil)
	}

	return h.Set(other.Snapshot())
}

var (
	_ coda.FormulasClient = (*FormulasClient)(nil)
	_ coda.FormulaHandle  = (*FormulaHandle)(nil)
)
