package constants

import "time"

// API endpoint.
const (
	// DefaultBaseURL is the Coda REST API v1 root.
	DefaultBaseURL = "https://coda.io/apis/v1"

	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "coda-client-go"
)

// API paths. Paths with identifiers are built by the resource clients.
const (
	APIPathDocs               = "/docs"
	APIPathWhoAmI             = "/whoami"
	APIPathResolveBrowserLink = "/resolveBrowserLink"
	APIPathCategories         = "/categories"
	APIPathMutationStatus     = "/mutationStatus"
)

// Doc-scoped path segments.
const (
	PathSegmentPages       = "pages"
	PathSegmentTables      = "tables"
	PathSegmentColumns     = "columns"
	PathSegmentRows        = "rows"
	PathSegmentButtons     = "buttons"
	PathSegmentControls    = "controls"
	PathSegmentFormulas    = "formulas"
	PathSegmentACLMetadata = "acl/metadata"
	PathSegmentACLPerms    = "acl/permissions"
	PathSegmentPublish     = "publish"
	PathSegmentAutomation  = "hooks/automation"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are only performed when the caller opts in.
const (
	// DefaultRetryWaitMin is the minimum wait between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between transport retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Mutation polling.
const (
	// DefaultMutationPollInterval is the pause between two mutation status checks.
	DefaultMutationPollInterval = 10 * time.Second

	// DefaultMutationMaxAttempts bounds the number of status checks of one wait.
	DefaultMutationMaxAttempts = 6

	// MutationStatusRetention is roughly how long the API keeps a request id.
	MutationStatusRetention = 24 * time.Hour
)

// Pagination.
const (
	// DefaultPageSize is the server-side default for list endpoints.
	DefaultPageSize = 25

	// MaxTreePages bounds the number of list pages fetched when building a page tree.
	MaxTreePages = 100
)

// Query parameter names.
const (
	QueryLimit                  = "limit"
	QueryPageToken              = "pageToken"
	QuerySortBy                 = "sortBy"
	QueryUseUpdatedTableLayouts = "useUpdatedTableLayouts"
	QueryDisableParsing         = "disableParsing"
	QueryUseColumnNames         = "useColumnNames"
	QueryValueFormat            = "valueFormat"
	QueryDegradeGracefully      = "degradeGracefully"
	QueryURL                    = "url"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// TimestampFormat is used when rendering timestamps in tables.
	TimestampFormat = "2006-01-02 15:04:05"
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Environment variables read by codaclient.NewFromEnv and the CLI.
const (
	EnvAPIToken = "CODA_API_TOKEN"
	EnvAPIURL   = "CODA_API_URL"
)
