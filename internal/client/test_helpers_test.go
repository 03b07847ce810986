package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// recordedRequest is one call received by the fake API.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// fakeAPI is an in-process stand-in for the Coda API. Routes are keyed by
// method and escaped path; unknown routes answer with a Coda-style 404.
type fakeAPI struct {
	t        *testing.T
	server   *httptest.Server
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{t: t, routes: make(map[string]http.HandlerFunc)}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)

	return api
}

func (f *fakeAPI) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	path := request.URL.EscapedPath()

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: request.Method,
		Path:   path,
		Query:  request.URL.Query(),
		Header: request.Header.Clone(),
		Body:   body,
	})
	handler, ok := f.routes[request.Method+" "+path]
	f.mu.Unlock()

	if !ok {
		writeJSON(writer, http.StatusNotFound, map[string]interface{}{
			"statusCode":    http.StatusNotFound,
			"statusMessage": "Not Found",
			"message":       "no route for " + request.Method + " " + path,
		})

		return
	}

	handler(writer, request)
}

// handle registers a fixed JSON response.
func (f *fakeAPI) handle(method, path string, status int, response interface{}) {
	f.handleFunc(method, path, func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, status, response)
	})
}

func (f *fakeAPI) handleFunc(method, path string, handler http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.routes[method+" "+path] = handler
}

// calls returns the requests received for method and path.
func (f *fakeAPI) calls(method, path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []recordedRequest

	for _, req := range f.requests {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}

	return out
}

func (f *fakeAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *fakeAPI) client() *Client {
	f.t.Helper()

	client, err := New(context.Background(), &coda.Config{BaseURL: f.server.URL, APIToken: testToken})
	require.NoError(f.t, err)

	return client
}

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(writer).Encode(body)
	}
}

func decodeBody(t *testing.T, req recordedRequest) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(req.Body, &out))

	return out
}

// testLogger records log calls.
type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (l *testLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *testLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *testLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *testLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *testLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

func (l *testLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0

	for _, entry := range l.entries {
		if entry.msg == msg {
			n++
		}
	}

	return n
}
