package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRowsCommand creates the rows command group
func NewRowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rows",
		Aliases: []string{"row"},
		Short:   "Manage table rows",
		Long:    "List, read, write and delete the rows of a table",
	}

	cmd.AddCommand(newRowsListCommand())
	cmd.AddCommand(newRowsGetCommand())
	cmd.AddCommand(newRowsUpsertCommand())
	cmd.AddCommand(newRowsUpdateCommand())
	cmd.AddCommand(newRowsDeleteCommand())
	cmd.AddCommand(newRowsPushButtonCommand())

	return cmd
}

func addRowFormatFlags(cmd *cobra.Command, useColumnNames *bool, valueFormat *string) {
	cmd.Flags().BoolVar(useColumnNames, "column-names", true, "key values by column name instead of id")
	cmd.Flags().StringVar(valueFormat, "value-format", "", "value format (simple, simpleWithArrays, rich)")
}

func newRowsListCommand() *cobra.Command {
	var (
		opts                  coda.RowListOptions
		query, sortBy, format string
		visibleOnly           bool
	)

	cmd := &cobra.Command{
		Use:   "list DOC TABLE",
		Short: "List rows",
		Long: `List the rows of a table or view.

--query COLUMN=VALUE keeps the rows whose column equals VALUE. VALUE is
parsed as JSON when possible, so 42 and true match numbers and booleans
while anything else matches text.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(query)
			if err != nil {
				return err
			}

			opts.Query = q
			opts.SortBy = coda.RowSortBy(sortBy)
			opts.ValueFormat = coda.RowValueFormat(format)

			if cmd.Flags().Changed("visible-only") {
				opts.VisibleOnly = coda.Bool(visibleOnly)
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Rows().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list rows: %w", err)
			}

			out := newListOutput[coda.Row](list)

			err = renderOutput(cmd.OutOrStdout(), out, func(table *tablewriter.Table) error {
				return rowsTable(table, out.Items)
			})
			if err != nil {
				return err
			}

			printNextPage(cmd.OutOrStdout(), list.NextPageToken)

			return nil
		},
	}

	addListFlags(cmd, &opts.ListOptions)
	addRowFormatFlags(cmd, &opts.UseColumnNames, &format)
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter as COLUMN=VALUE")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort order (createdAt, natural, updatedAt)")
	cmd.Flags().BoolVar(&visibleOnly, "visible-only", false, "only rows visible in the view")
	cmd.Flags().StringVar(&opts.SyncToken, "sync-token", "", "only rows changed since this sync token")

	return cmd
}

// rowsTable renders rows with one column per cell, ordered by name.
func rowsTable(table *tablewriter.Table, rows []*coda.Row) error {
	seen := make(map[string]bool)
	columns := make([]string, 0)

	for _, row := range rows {
		for column := range row.Values {
			if !seen[column] {
				seen[column] = true
				columns = append(columns, column)
			}
		}
	}

	sort.Strings(columns)

	header := make([]interface{}, 0, len(columns)+1)
	header = append(header, "ID")

	for _, column := range columns {
		header = append(header, column)
	}

	table.Header(header...)

	for _, row := range rows {
		cells := make([]interface{}, 0, len(columns)+1)
		cells = append(cells, row.ID)

		for _, column := range columns {
			cells = append(cells, row.Values[column].String())
		}

		if err := table.Append(cells...); err != nil {
			return err
		}
	}

	return nil
}

func newRowsGetCommand() *cobra.Command {
	var (
		opts   coda.RowGetOptions
		format string
	)

	cmd := &cobra.Command{
		Use:   "get DOC TABLE ROW",
		Short: "Get a row",
		Long:  "Display a row, addressed by id or display name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ValueFormat = coda.RowValueFormat(format)

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Rows().Get(ctx, args[2], &opts)
			if err != nil {
				return fmt.Errorf("failed to get row: %w", err)
			}

			row := handle.Snapshot()

			pairs := []string{"ID", row.ID, "Name", row.Name, "Updated", formatTime(row.UpdatedAt)}

			columns := make([]string, 0, len(row.Values))
			for column := range row.Values {
				columns = append(columns, column)
			}

			sort.Strings(columns)

			for _, column := range columns {
				pairs = append(pairs, column, row.Values[column].String())
			}

			return renderOutput(cmd.OutOrStdout(), row, propertyTable(pairs...))
		},
	}

	addRowFormatFlags(cmd, &opts.UseColumnNames, &format)

	return cmd
}

func newRowsUpsertCommand() *cobra.Command {
	var (
		cells          []string
		keyColumns     []string
		disableParsing bool
		wait           bool
	)

	cmd := &cobra.Command{
		Use:   "upsert DOC TABLE --cell COLUMN=VALUE...",
		Short: "Insert or update a row",
		Long: `Insert a row, or update the rows whose --key columns match.

Each --cell sets one column. VALUE is parsed as JSON when possible, so
42, true and ["a","b"] are sent as a number, a boolean and a list.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits, err := parseCells(cells)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			result, err := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Rows().Upsert(ctx, &coda.RowUpsertRequest{
				Rows:       []coda.RowEdit{{Cells: edits}},
				KeyColumns: keyColumns,
			}, disableParsing)
			if err != nil {
				return fmt.Errorf("failed to upsert row: %w", err)
			}

			if len(result.AddedRowIDs) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added rows: %s\n", strings.Join(result.AddedRowIDs, ", "))
			}

			return waitForMutation(ctx, cmd.OutOrStdout(), result.Mutation, wait)
		},
	}

	cmd.Flags().StringArrayVar(&cells, "cell", nil, "cell as COLUMN=VALUE (repeatable)")
	cmd.Flags().StringSliceVar(&keyColumns, "key", nil, "key column used to match existing rows (repeatable)")
	cmd.Flags().BoolVar(&disableParsing, "disable-parsing", false, "store values verbatim instead of parsing them")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the change has been applied")
	_ = cmd.MarkFlagRequired("cell")

	return cmd
}

func newRowsUpdateCommand() *cobra.Command {
	var (
		cells          []string
		disableParsing bool
		wait           bool
	)

	cmd := &cobra.Command{
		Use:   "update DOC TABLE ROW --cell COLUMN=VALUE...",
		Short: "Update a row",
		Long:  "Replace cells of a single row. VALUE is parsed as JSON when possible.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits, err := parseCells(cells)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			row := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Rows().Handle(args[2], nil)

			result, err := row.Update(ctx, &coda.RowUpdateRequest{Row: coda.RowEdit{Cells: edits}}, disableParsing)
			if err != nil {
				return fmt.Errorf("failed to update row: %w", err)
			}

			return waitForMutation(ctx, cmd.OutOrStdout(), result.Mutation, wait)
		},
	}

	cmd.Flags().StringArrayVar(&cells, "cell", nil, "cell as COLUMN=VALUE (repeatable)")
	cmd.Flags().BoolVar(&disableParsing, "disable-parsing", false, "store values verbatim instead of parsing them")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the change has been applied")
	_ = cmd.MarkFlagRequired("cell")

	return cmd
}

func newRowsDeleteCommand() *cobra.Command {
	var (
		force bool
		wait  bool
	)

	cmd := &cobra.Command{
		Use:   "delete DOC TABLE ROW...",
		Short: "Delete rows",
		Long:  "Delete one row by id or name, or several rows by id",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowIDs := args[2:]

			if !force && !confirm(cmd, fmt.Sprintf("Really delete %d row(s)?", len(rowIDs))) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")

				return nil
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			rows := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Rows()

			var mutation coda.MutationHandle

			if len(rowIDs) == 1 {
				result, err := rows.Handle(rowIDs[0], nil).Delete(ctx)
				if err != nil {
					return fmt.Errorf("failed to delete row: %w", err)
				}

				mutation = result.Mutation
			} else {
				result, err := rows.Delete(ctx, rowIDs)
				if err != nil {
					return fmt.Errorf("failed to delete rows: %w", err)
				}

				mutation = result.Mutation
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleting %s\n", strings.Join(rowIDs, ", "))

			return waitForMutation(ctx, cmd.OutOrStdout(), mutation, wait)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the change has been applied")

	return cmd
}

func newRowsPushButtonCommand() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "push-button DOC TABLE ROW COLUMN",
		Short: "Push a button",
		Long:  "Push the button in a button column of a row",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			row := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Rows().Handle(args[2], nil)

			result, err := row.PushButton(ctx, args[3])
			if err != nil {
				return fmt.Errorf("failed to push button: %w", err)
			}

			return waitForMutation(ctx, cmd.OutOrStdout(), result.Mutation, wait)
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the change has been applied")

	return cmd
}
