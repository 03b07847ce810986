package coda

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Client is the root of the Coda API. Everything else is reached through the
// collection accessors it returns.
type Client interface {
	// WhoAmI returns the account the API token belongs to.
	WhoAmI(ctx context.Context) (*User, error)

	// ResolveBrowserLink maps a coda.io URL to the API resource it shows. With
	// degradeGracefully set, a link to a deleted child resolves to its closest
	// surviving ancestor instead of failing with 404.
	ResolveBrowserLink(ctx context.Context, link string, degradeGracefully bool) (*APILink, error)

	// Categories lists the names of the doc gallery categories.
	Categories(ctx context.Context) ([]string, error)

	Docs() DocsClient

	// Mutation binds a handle to a request id returned by an earlier write.
	Mutation(requestID string) MutationHandle
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a coda.Client.
//
// Per-request timeouts should generally be controlled via the context passed
// to client methods. HTTPTimeout bounds a single HTTP exchange.
//
// Transport retries are off unless RetryMax is positive. When enabled, only
// connection errors, 429 and 5xx responses are retried.
type Config struct {
	// BaseURL: API root. Defaults to https://coda.io/apis/v1.
	BaseURL string
	// APIToken: bearer token from the Coda account settings page.
	APIToken string

	// HTTPTimeout: timeout of one HTTP exchange. Defaults to 30s.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of transport retries. 0 disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: logs every request and response when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and mutation waits.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
}

// Validate implements validation.Validatable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, is.URL),
		validation.Field(&c.APIToken, validation.Required.Error(ErrAPITokenRequired.Error())),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RetryMax, validation.Min(0)),
		validation.Field(&c.RetryWaitMin, validation.Min(time.Duration(0))),
		validation.Field(&c.RetryWaitMax, validation.Min(c.RetryWaitMin)),
	)
}
