package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mackiedrew/coda-client/internal/auth"
	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/internal/http"
	"github.com/mackiedrew/coda-client/pkg/coda"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired           = errors.New("client config is required")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the coda.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       coda.Logger
	backend      *backend

	docs *DocsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *coda.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

func baseURLOf(config *coda.Config) string {
	if config.BaseURL == "" {
		return constants.DefaultBaseURL
	}

	return strings.TrimSuffix(config.BaseURL, "/")
}

// New creates a Coda API client authenticating with config.APIToken.
func New(ctx context.Context, config *coda.Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return NewWithTokenManager(config, auth.NewStaticTokenManager(config.APIToken))
}

// NewWithTokenManager creates a Coda API client with a custom token manager.
// config.APIToken is ignored.
func NewWithTokenManager(config *coda.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if tokenManager == nil {
		return nil, ErrNoTokenManagerConfigured
	}

	baseURL := baseURLOf(config)
	httpClient := http.NewClient(baseURL, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       config.Logger,
		backend:      &backend{httpClient: httpClient, logger: config.Logger},
	}
	client.docs = NewDocsClient(client.backend)

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WhoAmI implements coda.Client.WhoAmI.
func (c *Client) WhoAmI(ctx context.Context) (*coda.User, error) {
	user, err := getJSON[coda.User](ctx, c.backend, constants.APIPathWhoAmI, nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return user, nil
}

// ResolveBrowserLink implements coda.Client.ResolveBrowserLink.
func (c *Client) ResolveBrowserLink(ctx context.Context, link string, degradeGracefully bool) (*coda.APILink, error) {
	if link == "" {
		return nil, fmt.Errorf("browser link: %w", coda.ErrIdentifierRequired)
	}

	query := url.Values{}
	query.Set(constants.QueryURL, link)

	if degradeGracefully {
		query.Set(constants.QueryDegradeGracefully, constants.BooleanTrue)
	}

	resolved, err := getJSON[coda.APILink](ctx, c.backend, constants.APIPathResolveBrowserLink, query)
	if err != nil {
		return nil, fmt.Errorf("resolving browser link: %w", err)
	}

	return resolved, nil
}

type categoryList struct {
	Items []coda.Category `json:"items"`
}

// Categories implements coda.Client.Categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	list, err := getJSON[categoryList](ctx, c.backend, constants.APIPathCategories, nil)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, category := range list.Items {
		names = append(names, category.Name)
	}

	return names, nil
}

// Docs implements coda.Client.Docs.
func (c *Client) Docs() coda.DocsClient {
	return c.docs
}

// Mutation implements coda.Client.Mutation.
func (c *Client) Mutation(requestID string) coda.MutationHandle {
	return newMutationHandle(c.backend, requestID)
}

// loggerAdapter adapts coda.Logger to http.Logger.
type loggerAdapter struct {
	logger coda.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

var _ coda.Client = (*Client)(nil)
