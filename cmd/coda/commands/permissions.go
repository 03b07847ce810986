package commands

import (
	"fmt"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPermissionsCommand creates the permissions command group
func NewPermissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "permissions",
		Aliases: []string{"perms", "acl"},
		Short:   "Manage doc sharing",
		Long:    "List, grant and revoke access to a doc",
	}

	cmd.AddCommand(newPermissionsListCommand())
	cmd.AddCommand(newPermissionsAddCommand())
	cmd.AddCommand(newPermissionsDeleteCommand())

	return cmd
}

func newPermissionsListCommand() *cobra.Command {
	var opts coda.ListOptions

	cmd := &cobra.Command{
		Use:   "list DOC",
		Short: "List permissions",
		Long:  "List who has access to a doc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().Handle(docID(args[0])).Permissions().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list permissions: %w", err)
			}

			err = renderOutput(cmd.OutOrStdout(), list, func(table *tablewriter.Table) error {
				table.Header("ID", "Principal", "Grantee", "Access")

				for _, p := range list.Items {
					if err := table.Append(p.ID, string(p.Principal.Type), grantee(p.Principal), string(p.Access)); err != nil {
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

	addListFlags(cmd, &opts)

	return cmd
}

func grantee(p coda.Principal) string {
	switch p.Type {
	case coda.PrincipalEmail:
		return p.Email
	case coda.PrincipalDomain:
		return p.Domain
	default:
		return "anyone with the link"
	}
}

func newPermissionsAddCommand() *cobra.Command {
	var (
		email, domain string
		anyone        bool
		access        string
		suppressEmail bool
	)

	cmd := &cobra.Command{
		Use:   "add DOC",
		Short: "Grant access",
		Long:  "Grant a user, an email domain or anyone with the link access to a doc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var principal coda.Principal

			switch {
			case email != "":
				principal = coda.EmailPrincipal(email)
			case domain != "":
				principal = coda.DomainPrincipal(domain)
			case anyone:
				principal = coda.AnyonePrincipal()
			default:
				return ErrPrincipalRequired
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			err = client.Docs().Handle(docID(args[0])).Permissions().Add(ctx, &coda.PermissionAddRequest{
				Access:        coda.AccessType(access),
				Principal:     principal,
				SuppressEmail: suppressEmail,
			})
			if err != nil {
				return fmt.Errorf("failed to add permission: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Granted %s access to %s\n", access, grantee(principal))

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "grant access to this user")
	cmd.Flags().StringVar(&domain, "domain", "", "grant access to everyone in this email domain")
	cmd.Flags().BoolVar(&anyone, "anyone", false, "grant access to anyone with the link")
	cmd.Flags().StringVar(&access, "access", string(coda.AccessReadOnly), "access level (readonly, write, comment, none)")
	cmd.Flags().BoolVar(&suppressEmail, "suppress-email", false, "do not notify the grantee")
	cmd.MarkFlagsMutuallyExclusive("email", "domain", "anyone")

	return cmd
}

func newPermissionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DOC PERMISSION_ID",
		Short: "Revoke access",
		Long:  "Remove a permission from a doc",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := client.Docs().Handle(docID(args[0])).Permissions().Delete(ctx, args[1]); err != nil {
				return fmt.Errorf("failed to delete permission: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted permission '%s'\n", args[1])

			return nil
		},
	}
}
