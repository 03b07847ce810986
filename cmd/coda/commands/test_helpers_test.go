package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const testToken = "test-token"

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// setupCLI points the CLI at a config file in a temporary directory and
// resets viper when the test ends. It returns the config file path.
func setupCLI(t *testing.T, output string) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	viper.Set("config", path)
	viper.Set("output", output)

	return path
}

// runCommand executes cmd with args and returns what it wrote to stdout.
func runCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// fakeCoda is an httptest server the CLI is configured to talk to.
type fakeCoda struct {
	mux      *http.ServeMux
	mu       sync.Mutex
	requests []capturedRequest
}

func newFakeCoda(t *testing.T) *fakeCoda {
	t.Helper()

	f := &fakeCoda{mux: http.NewServeMux()}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		_, _ = body.ReadFrom(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body.Bytes(),
		})
		f.mu.Unlock()

		r.Body = http.NoBody
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	viper.Set("api", server.URL)
	viper.Set("token", testToken)

	return f
}

func (f *fakeCoda) respond(pattern string, status int, body interface{}) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (f *fakeCoda) last(method, path string) *capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].Method == method && f.requests[i].Path == path {
			req := f.requests[i]

			return &req
		}
	}

	return nil
}

func decodeJSONBody(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decoding %q: %v", data, err)
	}

	return out
}
