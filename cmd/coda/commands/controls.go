package commands

import (
	"fmt"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewControlsCommand creates the controls command group
func NewControlsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "controls",
		Aliases: []string{"control"},
		Short:   "Inspect doc controls",
		Long:    "List and read the controls of a doc",
	}

	cmd.AddCommand(newControlsListCommand())
	cmd.AddCommand(newControlsGetCommand())

	return cmd
}

func newControlsListCommand() *cobra.Command {
	var opts coda.SortedListOptions

	cmd := &cobra.Command{
		Use:   "list DOC",
		Short: "List controls",
		Long:  "List the controls of a doc with their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().Handle(docID(args[0])).Controls().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list controls: %w", err)
			}

			out := newListOutput[coda.Control](list)

			err = renderOutput(cmd.OutOrStdout(), out, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Type", "Value")

				for _, c := range out.Items {
					if err := table.Append(c.ID, c.Name, string(c.ControlType), c.Value.String()); err != nil {
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
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "", "sort order (name)")

	return cmd
}

func newControlsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC CONTROL",
		Short: "Get a control",
		Long:  "Display a control, addressed by id or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Handle(docID(args[0])).Controls().Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to get control: %w", err)
			}

			c := handle.Snapshot()

			return renderOutput(cmd.OutOrStdout(), c, propertyTable(
				"ID", c.ID,
				"Name", c.Name,
				"Type", string(c.ControlType),
				"Value", c.Value.String(),
				"Page", refName(c.Parent),
			))
		},
	}
}

// NewFormulasCommand creates the formulas command group
func NewFormulasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "formulas",
		Aliases: []string{"formula"},
		Short:   "Inspect named formulas",
		Long:    "List and read the named formulas of a doc",
	}

	cmd.AddCommand(newFormulasListCommand())
	cmd.AddCommand(newFormulasGetCommand())

	return cmd
}

func newFormulasListCommand() *cobra.Command {
	var opts coda.SortedListOptions

	cmd := &cobra.Command{
		Use:   "list DOC",
		Short: "List formulas",
		Long:  "List the named formulas of a doc with their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().Handle(docID(args[0])).Formulas().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list formulas: %w", err)
			}

			out := newListOutput[coda.Formula](list)

			err = renderOutput(cmd.OutOrStdout(), out, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Value")

				for _, f := range out.Items {
					if err := table.Append(f.ID, f.Name, f.Value.String()); err != nil {
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
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "", "sort order (name)")

	return cmd
}

func newFormulasGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC FORMULA",
		Short: "Get a formula",
		Long:  "Display a named formula, addressed by id or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Handle(docID(args[0])).Formulas().Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to get formula: %w", err)
			}

			f := handle.Snapshot()

			return renderOutput(cmd.OutOrStdout(), f, propertyTable(
				"ID", f.ID,
				"Name", f.Name,
				"Value", f.Value.String(),
				"Page", refName(f.Parent),
			))
		},
	}
}
