package constants

import "errors"

// Configuration errors.
var (
	ErrNoTokenConfigured = errors.New("no API token configured, use 'coda login' or set CODA_TOKEN")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrTokenRequired     = errors.New("API token is required")
)

// Argument errors.
var (
	ErrInvalidCellArgument = errors.New("cell must be in the form COLUMN=VALUE")
	ErrInvalidQueryMode    = errors.New("query column must be given with --column-id or --column-name, not both")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidPrincipal    = errors.New("exactly one of --email, --domain or --anyone is required")
)

// Operation errors.
var (
	ErrMutationNotCompleted = errors.New("mutation did not complete within the polling budget")
)
