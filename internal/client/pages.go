package client

import (
	"context"
	"fmt"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// PagesClient implements coda.PagesClient.
type PagesClient struct {
	backend *backend
	docID   string
}

// NewPagesClient creates a pages client bound to a doc.
func NewPagesClient(b *backend, docID string) *PagesClient {
	return &PagesClient{backend: b, docID: docID}
}

func (c *PagesClient) listPage(ctx context.Context, opts *coda.ListOptions) (*coda.ListResponse[coda.Page], error) {
	if err := requireID("doc", c.docID); err != nil {
		return nil, err
	}

	path := docPath(c.docID, constants.PathSegmentPages)

	list, err := getJSON[coda.ListResponse[coda.Page]](ctx, c.backend, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	return list, nil
}

// List implements coda.PagesClient.List.
func (c *PagesClient) List(ctx context.Context, opts *coda.ListOptions) (*coda.ListResponse[coda.PageHandle], error) {
	list, err := c.listPage(ctx, opts)
	if err != nil {
		return nil, err
	}

	return bindList(list, func(page *coda.Page) coda.PageHandle {
		return c.Handle(page.ID).Set(page)
	}), nil
}

// Get implements coda.PagesClient.Get.
func (c *PagesClient) Get(ctx context.Context, pageIDOrName string) (coda.PageHandle, error) {
	handle := c.Handle(pageIDOrName)

	if _, err := handle.Get(ctx); err != nil {
		return nil, err
	}

	return handle, nil
}

// Handle implements coda.PagesClient.Handle.
func (c *PagesClient) Handle(pageIDOrName string) coda.PageHandle {
	return newPageHandle(c.backend, c.docID, pageIDOrName)
}

// Tree implements coda.PagesClient.Tree.
func (c *PagesClient) Tree(ctx context.Context) (*coda.PageTree, error) {
	fetch := func(ctx context.Context, pageToken string) (*coda.ListResponse[coda.Page], error) {
		return c.listPage(ctx, &coda.ListOptions{PageToken: pageToken})
	}

	pages, err := coda.CollectAll(ctx, fetch, constants.MaxTreePages)
	if err != nil {
		return nil, fmt.Errorf("building page tree: %w", err)
	}

	return coda.NewPageTree(pages), nil
}

// PageHandle implements coda.PageHandle.
type PageHandle struct {
	backend *backend
	docID   string
	id      string
	cache   snapshot[coda.Page]
}

func newPageHandle(b *backend, docID, pageIDOrName string) *PageHandle {
	return &PageHandle{backend: b, docID: docID, id: pageIDOrName}
}

func (h *PageHandle) path() string {
	return docPath(h.docID, constants.PathSegmentPages, escape(h.id))
}

// ID implements coda.Handle.ID.
func (h *PageHandle) ID() string { return h.id }

// DocID implements coda.PageHandle.DocID.
func (h *PageHandle) DocID() string { return h.docID }

// Snapshot implements coda.Handle.Snapshot.
func (h *PageHandle) Snapshot() *coda.Page { return h.cache.get() }

// Hydrated implements coda.Handle.Hydrated.
func (h *PageHandle) Hydrated() bool { return h.cache.hydrated() }

// Get implements coda.Handle.Get.
func (h *PageHandle) Get(ctx context.Context) (*coda.Page, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	page, err := getJSON[coda.Page](ctx, h.backend, h.path(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting page %s: %w", h.id, err)
	}

	h.cache.set(page)

	return page, nil
}

// Refresh implements coda.Handle.Refresh.
func (h *PageHandle) Refresh(ctx context.Context) (*coda.Page, error) {
	return h.Get(ctx)
}

// Set implements coda.PageHandle.Set.
func (h *PageHandle) Set(page *coda.Page) coda.PageHandle {
	h.cache.set(page)

	return h
}

// SetFrom implements coda.PageHandle.SetFrom.
func (h *PageHandle) SetFrom(other coda.PageHandle) coda.PageHandle {
	if other == nil {
		return h.Set(nil)
	}

	return h.Set(other.Snapshot())
}

// Update implements coda.PageHandle.Update.
func (h *PageHandle) Update(ctx context.Context, req *coda.PageUpdateRequest) (coda.MutationHandle, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	if req == nil {
		req = &coda.PageUpdateRequest{}
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page update request: %w", err)
	}

	resp, err := h.backend.httpClient.Put(ctx, h.path(), req)
	if err != nil {
		return nil, fmt.Errorf("updating page %s: %w", h.id, err)
	}

	return decodeMutation(h.backend, resp)
}

// Parent implements coda.PageHandle.Parent.
func (h *PageHandle) Parent() coda.PageHandle {
	page := h.cache.get()
	if page == nil || page.Parent == nil || page.Parent.ID == "" {
		return nil
	}

	return newPageHandle(h.backend, h.docID, page.Parent.ID)
}

// Children implements coda.PageHandle.Children.
func (h *PageHandle) Children() []coda.PageHandle {
	page := h.cache.get()
	if page == nil {
		return nil
	}

	children := make([]coda.PageHandle, 0, len(page.Children))
	for _, child := range page.Children {
		children = append(children, newPageHandle(h.backend, h.docID, child.ID))
	}

	return children
}

func (h *PageHandle) validate() error {
	if err := requireID("doc", h.docID); err != nil {
		return err
	}

	return requireID("page", h.id)
}

var (
	_ coda.PagesClient = (*PagesClient)(nil)
	_ coda.PageHandle  = (*PageHandle)(nil)
)
