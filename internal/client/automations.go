package client

import (
	"context"
	"fmt"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// AutomationsClient implements coda.AutomationsClient.
type AutomationsClient struct {
	backend *backend
	docID   string
}

// NewAutomationsClient creates an automations client bound to a doc.
func NewAutomationsClient(b *backend, docID string) *AutomationsClient {
	return &AutomationsClient{backend: b, docID: docID}
}

// Trigger implements coda.AutomationsClient.Trigger. A nil payload is sent as
// an empty JSON object.
func (c *AutomationsClient) Trigger(ctx context.Context, ruleID string, payload interface{}) (coda.MutationHandle, error) {
	if err := requireID("doc", c.docID); err != nil {
		return nil, err
	}

	if err := requireID("automation rule", ruleID); err != nil {
		return nil, err
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}

	path := docPath(c.docID, constants.PathSegmentAutomation, escape(ruleID))

	resp, err := c.backend.httpClient.Post(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("triggering automation %s: %w", ruleID, err)
	}

	return decodeMutation(c.backend, resp)
}

var _ coda.AutomationsClient = (*AutomationsClient)(nil)
