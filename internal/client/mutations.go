package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/internal/http"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// MutationHandle implements coda.MutationHandle.
type MutationHandle struct {
	backend   *backend
	requestID string
}

func newMutationHandle(b *backend, requestID string) *MutationHandle {
	return &MutationHandle{backend: b, requestID: requestID}
}

// decodeMutation binds a handle to the request id of a write response.
func decodeMutation(b *backend, resp *http.Response) (coda.MutationHandle, error) {
	out, err := decodeJSON[coda.MutationResponse](resp)
	if err != nil {
		return nil, fmt.Errorf("parsing mutation response: %w", err)
	}

	return newMutationHandle(b, out.RequestID), nil
}

// RequestID implements coda.MutationHandle.RequestID.
func (m *MutationHandle) RequestID() string {
	return m.requestID
}

// Status implements coda.MutationHandle.Status.
func (m *MutationHandle) Status(ctx context.Context) (*coda.MutationStatus, error) {
	if m.requestID == "" {
		return nil, coda.ErrEmptyMutationID
	}

	path := constants.APIPathMutationStatus + "/" + escape(m.requestID)

	status, err := getJSON[coda.MutationStatus](ctx, m.backend, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting mutation status: %w", err)
	}

	return status, nil
}

// Wait implements coda.MutationHandle.Wait. The first status request is sent
// immediately; a transport or API error ends the wait at once.
func (m *MutationHandle) Wait(ctx context.Context, interval time.Duration, maxAttempts int) (bool, error) {
	if maxAttempts < 1 {
		return false, nil
	}

	var policy backoff.BackOff = backoff.NewConstantBackOff(interval)
	policy = backoff.WithMaxRetries(policy, uint64(maxAttempts-1))
	policy = backoff.WithContext(policy, ctx)

	attempt := 0
	operation := func() error {
		attempt++

		status, err := m.Status(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}

		if status.Completed {
			return nil
		}

		return constants.ErrMutationNotCompleted
	}

	notify := func(_ error, next time.Duration) {
		m.backend.debug("Mutation pending", map[string]interface{}{
			"request_id": m.requestID,
			"attempt":    attempt,
			"next_poll":  next.String(),
		})
	}

	err := backoff.RetryNotify(operation, policy, notify)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, constants.ErrMutationNotCompleted):
		return false, nil
	default:
		return false, err
	}
}

// WaitDefault implements coda.MutationHandle.WaitDefault.
func (m *MutationHandle) WaitDefault(ctx context.Context) (bool, error) {
	return m.Wait(ctx, constants.DefaultMutationPollInterval, constants.DefaultMutationMaxAttempts)
}

var _ coda.MutationHandle = (*MutationHandle)(nil)
