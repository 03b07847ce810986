package commands

import (
	"fmt"
	"strconv"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command group
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tables",
		Aliases: []string{"table"},
		Short:   "Manage tables and views",
		Long:    "List and inspect the tables and views of a doc",
	}

	cmd.AddCommand(newTablesListCommand())
	cmd.AddCommand(newTablesGetCommand())

	return cmd
}

func newTablesListCommand() *cobra.Command {
	var (
		opts       coda.TableListOptions
		tableTypes []string
	)

	cmd := &cobra.Command{
		Use:   "list DOC",
		Short: "List tables",
		Long:  "List the tables and views of a doc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range tableTypes {
				opts.TableTypes = append(opts.TableTypes, coda.TableType(t))
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().Handle(docID(args[0])).Tables().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list tables: %w", err)
			}

			out := newListOutput[coda.Table](list)

			err = renderOutput(cmd.OutOrStdout(), out, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Type", "Page")

				for _, t := range out.Items {
					if err := table.Append(t.ID, t.Name, string(t.TableType), refName(t.Parent)); err != nil {
						return err
					}
				}

				return nil
			})
			if err != nil {
				return err
			}

			printNextPage(cmd.OutOrStdout(), list.NextPageToken)

			return nil
		},
	}

	addListFlags(cmd, &opts.ListOptions)
	cmd.Flags().StringSliceVar(&tableTypes, "type", nil, "only these table types (table, view)")
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "", "sort order (name)")

	return cmd
}

func newTablesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC TABLE",
		Short: "Get table details",
		Long:  "Display a table or view, addressed by id or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Handle(docID(args[0])).Tables().Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to get table: %w", err)
			}

			t := handle.Snapshot()

			parentTable := ""
			if t.ParentTable != nil {
				parentTable = refName(&t.ParentTable.Ref)
			}

			return renderOutput(cmd.OutOrStdout(), t, propertyTable(
				"ID", t.ID,
				"Name", t.Name,
				"Type", string(t.TableType),
				"Layout", string(t.Layout),
				"Rows", strconv.Itoa(t.RowCount),
				"Page", refName(t.Parent),
				"Source Table", parentTable,
				"Display Column", refName(t.DisplayColumn),
				"Created", formatTime(t.CreatedAt),
				"Updated", formatTime(t.UpdatedAt),
				"Browser Link", t.BrowserLink,
			))
		},
	}
}

// NewColumnsCommand creates the columns command group
func NewColumnsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "columns",
		Aliases: []string{"column", "cols"},
		Short:   "Inspect table columns",
		Long:    "List and inspect the columns of a table",
	}

	cmd.AddCommand(newColumnsListCommand())
	cmd.AddCommand(newColumnsGetCommand())

	return cmd
}

func newColumnsListCommand() *cobra.Command {
	var (
		opts        coda.ColumnListOptions
		visibleOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list DOC TABLE",
		Short: "List columns",
		Long:  "List the columns of a table or view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("visible-only") {
				opts.VisibleOnly = coda.Bool(visibleOnly)
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Columns().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list columns: %w", err)
			}

			out := newListOutput[coda.Column](list)

			err = renderOutput(cmd.OutOrStdout(), out, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Type", "Calculated", "Display")

				for _, c := range out.Items {
					if err := table.Append(c.ID, c.Name, columnType(c.Format), yesNo(c.Calculated), yesNo(c.Display)); err != nil {
						return err
					}
				}

				return nil
			})
			if err != nil {
				return err
			}

			printNextPage(cmd.OutOrStdout(), list.NextPageToken)

			return nil
		},
	}

	addListFlags(cmd, &opts.ListOptions)
	cmd.Flags().BoolVar(&visibleOnly, "visible-only", false, "only columns visible in the table")

	return cmd
}

func newColumnsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC TABLE COLUMN",
		Short: "Get column details",
		Long:  "Display a column, addressed by id or name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Handle(docID(args[0])).Tables().Handle(args[1]).Columns().Get(ctx, args[2])
			if err != nil {
				return fmt.Errorf("failed to get column: %w", err)
			}

			c := handle.Snapshot()

			return renderOutput(cmd.OutOrStdout(), c, propertyTable(
				"ID", c.ID,
				"Name", c.Name,
				"Type", columnType(c.Format),
				"Display Column", yesNo(c.Display),
				"Calculated", yesNo(c.Calculated),
				"Formula", c.Formula,
				"Default Value", c.DefaultValue,
			))
		},
	}
}

func columnType(format coda.ColumnFormat) string {
	if format.IsArray {
		return string(format.Type) + "[]"
	}

	return string(format.Type)
}
