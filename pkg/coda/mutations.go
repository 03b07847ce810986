package coda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
)

// WaitAll waits on several mutations concurrently. The returned slice holds
// the completion of each handle in input order. Failed waits report false and
// their errors are collected into the returned error.
func WaitAll(ctx context.Context, interval time.Duration, maxAttempts int, handles ...MutationHandle) ([]bool, error) {
	results := make([]bool, len(handles))
	errs := make([]error, len(handles))

	var wg sync.WaitGroup

	for i, h := range handles {
		if h == nil {
			continue
		}

		wg.Add(1)

		go func(i int, h MutationHandle) {
			defer wg.Done()

			done, err := h.Wait(ctx, interval, maxAttempts)
			if err != nil {
				errs[i] = fmt.Errorf("waiting for mutation %s: %w", h.RequestID(), err)

				return
			}

			results[i] = done
		}(i, h)
	}

	wg.Wait()

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	return results, result.ErrorOrNil()
}
