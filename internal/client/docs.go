package client

import (
	"context"
	"fmt"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// DocsClient implements coda.DocsClient.
type DocsClient struct {
	backend *backend
}

// NewDocsClient creates a new docs client.
func NewDocsClient(b *backend) *DocsClient {
	return &DocsClient{backend: b}
}

// List implements coda.DocsClient.List.
func (c *DocsClient) List(ctx context.Context, opts *coda.DocListOptions) (*coda.ListResponse[coda.DocHandle], error) {
	list, err := getJSON[coda.ListResponse[coda.Doc]](ctx, c.backend, constants.APIPathDocs, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing docs: %w", err)
	}

	return bindList(list, func(doc *coda.Doc) coda.DocHandle {
		return c.Handle(doc.ID).Set(doc)
	}), nil
}

// Create implements coda.DocsClient.Create. The returned handle is hydrated
// with the doc as reported by the create response.
func (c *DocsClient) Create(ctx context.Context, req *coda.DocCreateRequest) (coda.DocHandle, error) {
	if req == nil {
		req = &coda.DocCreateRequest{}
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid doc create request: %w", err)
	}

	resp, err := c.backend.httpClient.Post(ctx, constants.APIPathDocs, req)
	if err != nil {
		return nil, fmt.Errorf("creating doc: %w", err)
	}

	doc, err := decodeJSON[coda.Doc](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing doc: %w", err)
	}

	return c.Handle(doc.ID).Set(doc), nil
}

// Get implements coda.DocsClient.Get.
func (c *DocsClient) Get(ctx context.Context, docID string) (coda.DocHandle, error) {
	handle := c.Handle(docID)

	if _, err := handle.Get(ctx); err != nil {
		return nil, err
	}

	return handle, nil
}

// Handle implements coda.DocsClient.Handle.
func (c *DocsClient) Handle(docID string) coda.DocHandle {
	return newDocHandle(c.backend, docID)
}

// Delete implements coda.DocsClient.Delete.
func (c *DocsClient) Delete(ctx context.Context, docID string) error {
	return c.Handle(docID).Delete(ctx)
}

// DocHandle implements coda.DocHandle.
type DocHandle struct {
	backend *backend
	id      string
	cache   snapshot[coda.Doc]

	pages       *PagesClient
	tables      *TablesClient
	controls    *ControlsClient
	formulas    *FormulasClient
	permissions *PermissionsClient
	automations *AutomationsClient
}

func newDocHandle(b *backend, docID string) *DocHandle {
	return &DocHandle{
		backend:     b,
		id:          docID,
		pages:       NewPagesClient(b, docID),
		tables:      NewTablesClient(b, docID),
		controls:    NewControlsClient(b, docID),
		formulas:    NewFormulasClient(b, docID),
		permissions: NewPermissionsClient(b, docID),
		automations: NewAutomationsClient(b, docID),
	}
}

func (h *DocHandle) path(rest ...string) string {
	return docPath(h.id, rest...)
}

// ID implements coda.Handle.ID.
func (h *DocHandle) ID() string { return h.id }

// Snapshot implements coda.Handle.Snapshot.
func (h *DocHandle) Snapshot() *coda.Doc { return h.cache.get() }

// Hydrated implements coda.Handle.Hydrated.
func (h *DocHandle) Hydrated() bool { return h.cache.hydrated() }

// Get implements coda.Handle.Get.
func (h *DocHandle) Get(ctx context.Context) (*coda.Doc, error) {
	if err := requireID("doc", h.id); err != nil {
		return nil, err
	}

	doc, err := getJSON[coda.Doc](ctx, h.backend, h.path(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting doc %s: %w", h.id, err)
	}

	h.cache.set(doc)

	return doc, nil
}

// Refresh implements coda.Handle.Refresh.
func (h *DocHandle) Refresh(ctx context.Context) (*coda.Doc, error) {
	return h.Get(ctx)
}

// Set implements coda.DocHandle.Set.
func (h *DocHandle) Set(doc *coda.Doc) coda.DocHandle {
	h.cache.set(doc)

	return h
}

// SetFrom implements coda.DocHandle.SetFrom.
func (h *DocHandle) SetFrom(other coda.DocHandle) coda.DocHandle {
	if other == nil {
		return h.Set(nil)
	}

	return h.Set(other.Snapshot())
}

// Delete implements coda.DocHandle.Delete.
func (h *DocHandle) Delete(ctx context.Context) error {
	if err := requireID("doc", h.id); err != nil {
		return err
	}

	if _, err := h.backend.httpClient.Delete(ctx, h.path()); err != nil {
		return fmt.Errorf("deleting doc %s: %w", h.id, err)
	}

	return nil
}

// ShareMetadata implements coda.DocHandle.ShareMetadata.
func (h *DocHandle) ShareMetadata(ctx context.Context) (*coda.ACLMetadata, error) {
	if err := requireID("doc", h.id); err != nil {
		return nil, err
	}

	metadata, err := getJSON[coda.ACLMetadata](ctx, h.backend, h.path(constants.PathSegmentACLMetadata), nil)
	if err != nil {
		return nil, fmt.Errorf("getting sharing metadata: %w", err)
	}

	return metadata, nil
}

// Publish implements coda.DocHandle.Publish.
func (h *DocHandle) Publish(ctx context.Context, req *coda.PublishRequest) (coda.MutationHandle, error) {
	if err := requireID("doc", h.id); err != nil {
		return nil, err
	}

	if req == nil {
		req = &coda.PublishRequest{}
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid publish request: %w", err)
	}

	resp, err := h.backend.httpClient.Put(ctx, h.path(constants.PathSegmentPublish), req)
	if err != nil {
		return nil, fmt.Errorf("publishing doc %s: %w", h.id, err)
	}

	return decodeMutation(h.backend, resp)
}

// Unpublish implements coda.DocHandle.Unpublish.
func (h *DocHandle) Unpublish(ctx context.Context) error {
	if err := requireID("doc", h.id); err != nil {
		return err
	}

	if _, err := h.backend.httpClient.Delete(ctx, h.path(constants.PathSegmentPublish)); err != nil {
		return fmt.Errorf("unpublishing doc %s: %w", h.id, err)
	}

	return nil
}

// Pages implements coda.DocHandle.Pages.
func (h *DocHandle) Pages() coda.PagesClient { return h.pages }

// Tables implements coda.DocHandle.Tables.
func (h *DocHandle) Tables() coda.TablesClient { return h.tables }

// Controls implements coda.DocHandle.Controls.
func (h *DocHandle) Controls() coda.ControlsClient { return h.controls }

// Formulas implements coda.DocHandle.Formulas.
func (h *DocHandle) Formulas() coda.FormulasClient { return h.formulas }

// Permissions implements coda.DocHandle.Permissions.
func (h *DocHandle) Permissions() coda.PermissionsClient { return h.permissions }

// Automations implements coda.DocHandle.Automations.
func (h *DocHandle) Automations() coda.AutomationsClient { return h.automations }

var (
	_ coda.DocsClient = (*DocsClient)(nil)
	_ coda.DocHandle  = (*DocHandle)(nil)
)
