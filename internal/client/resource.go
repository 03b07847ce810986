package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/internal/http"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// backend is shared by every collection client and handle built from one Client.
type backend struct {
	httpClient *http.Client
	logger     coda.Logger
}

func (b *backend) debug(msg string, fields map[string]interface{}) {
	if b.logger != nil {
		b.logger.Debug(msg, fields)
	}
}

// snapshot is the mutex-guarded cached state of a handle. It stores and hands
// out shallow copies; slices and maps inside T are shared.
type snapshot[T any] struct {
	mu    sync.RWMutex
	value *T
}

func (s *snapshot[T]) set(v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v == nil {
		s.value = nil

		return
	}

	cp := *v
	s.value = &cp
}

func (s *snapshot[T]) get() *T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.value == nil {
		return nil
	}

	cp := *s.value

	return &cp
}

func (s *snapshot[T]) hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.value != nil
}

// joinPath joins already-escaped segments into an absolute API path.
func joinPath(segments ...string) string {
	var b strings.Builder

	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}

	return b.String()
}

func escape(identifier string) string {
	return url.PathEscape(identifier)
}

func docPath(docID string, rest ...string) string {
	segments := append([]string{strings.TrimPrefix(constants.APIPathDocs, "/"), escape(docID)}, rest...)

	return joinPath(segments...)
}

func getJSON[T any](ctx context.Context, b *backend, path string, query url.Values) (*T, error) {
	resp, err := b.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var out T

	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &out, nil
}

func decodeJSON[T any](resp *http.Response) (*T, error) {
	var out T

	if err := http.DecodeJSON(resp, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// bindList turns a page of snapshots into a page of hydrated handles.
func bindList[T any, H any](list *coda.ListResponse[T], bind func(*T) H) *coda.ListResponse[H] {
	out := &coda.ListResponse[H]{
		Items:         make([]H, 0, len(list.Items)),
		Href:          list.Href,
		NextPageToken: list.NextPageToken,
		NextPageLink:  list.NextPageLink,
		NextSyncToken: list.NextSyncToken,
	}

	for i := range list.Items {
		out.Items = append(out.Items, bind(&list.Items[i]))
	}

	return out
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s: %w", kind, coda.ErrIdentifierRequired)
	}

	return nil
}
