package coda

import (
	"context"
	"fmt"
)

// PageFetcher fetches one page of a listing given the token of that page.
// The first page is requested with an empty token.
type PageFetcher[T any] func(ctx context.Context, pageToken string) (*ListResponse[T], error)

// CollectAll follows nextPageToken until the listing is exhausted or maxPages
// pages have been read. A maxPages of 0 means no limit. Items gathered before a
// failing page are returned together with the error.
func CollectAll[T any](ctx context.Context, fetch PageFetcher[T], maxPages int) ([]T, error) {
	var (
		items []T
		token string
	)

	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		resp, err := fetch(ctx, token)
		if err != nil {
			return items, fmt.Errorf("fetching page %d: %w", page+1, err)
		}

		items = append(items, resp.Items...)

		if !resp.HasNextPage() || resp.NextPageToken == token {
			break
		}

		token = resp.NextPageToken
	}

	return items, nil
}
