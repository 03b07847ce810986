package client

import (
	"context"
	"fmt"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// PermissionsClient implements coda.PermissionsClient.
type PermissionsClient struct {
	backend *backend
	docID   string
}

// NewPermissionsClient creates a permissions client bound to a doc.
func NewPermissionsClient(b *backend, docID string) *PermissionsClient {
	return &PermissionsClient{backend: b, docID: docID}
}

// List implements coda.PermissionsClient.List.
func (c *PermissionsClient) List(ctx context.Context, opts *coda.ListOptions) (*coda.ListResponse[coda.Permission], error) {
	if err := requireID("doc", c.docID); err != nil {
		return nil, err
	}

	path := docPath(c.docID, constants.PathSegmentACLPerms)

	list, err := getJSON[coda.ListResponse[coda.Permission]](ctx, c.backend, path, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing permissions: %w", err)
	}

	return list, nil
}

// Add implements coda.PermissionsClient.Add.
func (c *PermissionsClient) Add(ctx context.Context, req *coda.PermissionAddRequest) error {
	if err := requireID("doc", c.docID); err != nil {
		return err
	}

	if req == nil {
		req = &coda.PermissionAddRequest{}
	}

	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid permission request: %w", err)
	}

	path := docPath(c.docID, constants.PathSegmentACLPerms)

	if _, err := c.backend.httpClient.Post(ctx, path, req); err != nil {
		return fmt.Errorf("adding permission: %w", err)
	}

	return nil
}

// Delete implements coda.PermissionsClient.Delete.
func (c *PermissionsClient) Delete(ctx context.Context, permissionID string) error {
	if err := requireID("doc", c.docID); err != nil {
		return err
	}

	if err := requireID("permission", permissionID); err != nil {
		return err
	}

	path := docPath(c.docID, constants.PathSegmentACLPerms, escape(permissionID))

	if _, err := c.backend.httpClient.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting permission %s: %w", permissionID, err)
	}

	return nil
}

var _ coda.PermissionsClient = (*PermissionsClient)(nil)
