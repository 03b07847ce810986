package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".coda"

	// ConfigFileName is the name of the CLI config file.
	ConfigFileName = "config.yml"

	// JSON formatting.
	defaultJSONIndent = "  "

	// Default page size of list commands.
	defaultListLimit = 50
)

// Common static errors used throughout the commands package.
var (
	ErrNotAuthenticated     = errors.New("not authenticated, run 'coda login' first")
	ErrTokenRequired        = errors.New("API token is required")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrInvalidRetryMax      = errors.New("retry_max must be a non-negative integer")
	ErrInvalidCellFormat    = errors.New("invalid cell, expected COLUMN=VALUE")
	ErrInvalidQueryFormat   = errors.New("invalid query, expected COLUMN=VALUE")
	ErrUnsupportedOutput    = errors.New("unsupported output format")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrPrincipalRequired    = errors.New("one of --email, --domain or --anyone is required")
	ErrMutationNotCompleted = errors.New("mutation did not complete in time")
)

// commandContext bounds a single command invocation.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithTimeout(ctx, 5*time.Minute)
}

// outputFormat returns the requested output format.
func outputFormat() string {
	format := strings.ToLower(viper.GetString("output"))
	if format == "" {
		return constants.FormatTable
	}

	return format
}

// renderOutput writes data as JSON or YAML, or hands a table to renderTable.
func renderOutput(w io.Writer, data interface{}, renderTable func(table *tablewriter.Table) error) error {
	switch format := outputFormat(); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	case constants.FormatTable:
		table := tablewriter.NewWriter(w)
		if err := renderTable(table); err != nil {
			return err
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutput, format)
	}
}

// propertyTable renders name/value pairs as a two-column table.
func propertyTable(pairs ...string) func(table *tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("Property", "Value")

		for i := 0; i+1 < len(pairs); i += 2 {
			if err := table.Append(pairs[i], orNotAvailable(pairs[i+1])); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	}
}

// printNextPage tells the user how to fetch the following page.
func printNextPage(w io.Writer, token string) {
	if token == "" || outputFormat() != constants.FormatTable {
		return
	}

	_, _ = fmt.Fprintf(w, "\nMore results available, pass --page-token %s\n", token)
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Local().Format(constants.TimestampFormat)
}

func refName(ref *coda.Ref) string {
	if ref == nil {
		return ""
	}

	if ref.Name != "" {
		return ref.Name
	}

	return ref.ID
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// addListFlags registers the pagination flags shared by list commands.
func addListFlags(cmd *cobra.Command, opts *coda.ListOptions) {
	cmd.Flags().IntVar(&opts.Limit, "limit", defaultListLimit, "maximum number of results per page")
	cmd.Flags().StringVar(&opts.PageToken, "page-token", "", "token of the page to fetch")
}

// parseCells turns COLUMN=VALUE pairs into cell edits, keeping their order.
// Values are parsed with coda.ParseCellInput.
func parseCells(pairs []string) ([]coda.CellEdit, error) {
	cells := make([]coda.CellEdit, 0, len(pairs))

	for _, pair := range pairs {
		column, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(column) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCellFormat, pair)
		}

		cells = append(cells, coda.CellEdit{Column: strings.TrimSpace(column), Value: coda.ParseCellInput(value)})
	}

	return cells, nil
}

// parseQuery turns COLUMN=VALUE into a row query. A column starting with
// "c-" is taken as a column id.
func parseQuery(expr string) (*coda.RowQuery, error) {
	if expr == "" {
		return nil, nil //nolint:nilnil // no query is a valid query
	}

	column, value, ok := strings.Cut(expr, "=")
	if !ok || strings.TrimSpace(column) == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidQueryFormat, expr)
	}

	column = strings.TrimSpace(column)
	if strings.HasPrefix(column, "c-") {
		return coda.QueryByColumnID(column, coda.ParseCellInput(value)), nil
	}

	return coda.QueryByColumnName(column, coda.ParseCellInput(value)), nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", question)

	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}

// waitForMutation optionally blocks until a write has been applied.
func waitForMutation(ctx context.Context, w io.Writer, mutation coda.MutationHandle, wait bool) error {
	if mutation == nil {
		return nil
	}

	if !wait {
		_, _ = fmt.Fprintf(w, "Mutation %s queued\n", mutation.RequestID())

		return nil
	}

	done, err := mutation.WaitDefault(ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for mutation: %w", err)
	}

	if !done {
		return fmt.Errorf("%w: %s", ErrMutationNotCompleted, mutation.RequestID())
	}

	_, _ = fmt.Fprintf(w, "Mutation %s completed\n", mutation.RequestID())

	return nil
}

// listOutput is the JSON and YAML shape of a list command.
type listOutput[T any] struct {
	Items         []*T   `json:"items"                   yaml:"items"`
	NextPageToken string `json:"nextPageToken,omitempty" yaml:"nextPageToken,omitempty"`
	NextSyncToken string `json:"nextSyncToken,omitempty" yaml:"nextSyncToken,omitempty"`
}

// newListOutput collects the snapshots of listed handles.
func newListOutput[T any, H interface{ Snapshot() *T }](list *coda.ListResponse[H]) *listOutput[T] {
	out := &listOutput[T]{
		Items:         make([]*T, 0, len(list.Items)),
		NextPageToken: list.NextPageToken,
		NextSyncToken: list.NextSyncToken,
	}

	for _, item := range list.Items {
		out.Items = append(out.Items, item.Snapshot())
	}

	return out
}

// docID accepts either a doc id or a coda.io browser link.
func docID(arg string) string {
	if id := coda.DocIDFromBrowserLink(arg); id != "" {
		return id
	}

	return arg
}
