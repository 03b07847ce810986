package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewWhoAmICommand creates the whoami command
func NewWhoAmICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the token",
		Long:  "Display the user and token the CLI is authenticated with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			user, err := client.WhoAmI(ctx)
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			workspace := ""
			if user.Workspace != nil {
				workspace = user.Workspace.Name
			}

			return renderOutput(cmd.OutOrStdout(), user, propertyTable(
				"Name", user.Name,
				"Login", user.LoginID,
				"Token Name", user.TokenName,
				"Scoped", yesNo(user.Scoped),
				"Workspace", workspace,
			))
		},
	}
}

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var degradeGracefully bool

	cmd := &cobra.Command{
		Use:   "resolve URL",
		Short: "Resolve a browser link",
		Long:  "Map a coda.io URL to the API resource it shows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			link, err := client.ResolveBrowserLink(ctx, args[0], degradeGracefully)
			if err != nil {
				return fmt.Errorf("failed to resolve link: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), link, propertyTable(
				"Type", string(link.Resource.Type),
				"ID", link.Resource.ID,
				"Name", link.Resource.Name,
				"Href", link.Resource.Href,
			))
		},
	}

	cmd.Flags().BoolVar(&degradeGracefully, "degrade-gracefully", false,
		"resolve links to deleted objects to their closest surviving parent")

	return cmd
}

// NewCategoriesCommand creates the categories command
func NewCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List doc gallery categories",
		Long:  "List the categories a published doc can be filed under",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			names, err := client.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), names, func(table *tablewriter.Table) error {
				table.Header("Category")

				for _, name := range names {
					if err := table.Append(strings.TrimSpace(name)); err != nil {
						return err
					}
				}

				return nil
			})
		},
	}
}
