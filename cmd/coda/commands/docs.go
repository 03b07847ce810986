package commands

import (
	"fmt"
	"strconv"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDocsCommand creates the docs command group
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"doc"},
		Short:   "Manage docs",
		Long:    "List, create, inspect, publish and delete Coda docs",
	}

	cmd.AddCommand(newDocsListCommand())
	cmd.AddCommand(newDocsGetCommand())
	cmd.AddCommand(newDocsCreateCommand())
	cmd.AddCommand(newDocsDeleteCommand())
	cmd.AddCommand(newDocsShareMetadataCommand())
	cmd.AddCommand(newDocsPublishCommand())
	cmd.AddCommand(newDocsUnpublishCommand())

	return cmd
}

func newDocsListCommand() *cobra.Command {
	var (
		opts                                 coda.DocListOptions
		owner, published, starred, inGallery bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List docs",
		Long:  "List the docs accessible with the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("owner") {
				opts.IsOwner = coda.Bool(owner)
			}

			if flags.Changed("published") {
				opts.IsPublished = coda.Bool(published)
			}

			if flags.Changed("starred") {
				opts.IsStarred = coda.Bool(starred)
			}

			if flags.Changed("in-gallery") {
				opts.InGallery = coda.Bool(inGallery)
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list docs: %w", err)
			}

			out := newListOutput[coda.Doc](list)

			err = renderOutput(cmd.OutOrStdout(), out, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Owner", "Updated")

				for _, doc := range out.Items {
					if err := table.Append(doc.ID, doc.Name, doc.OwnerName, formatTime(doc.UpdatedAt)); err != nil {
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
	cmd.Flags().BoolVar(&owner, "owner", false, "only docs owned by the caller")
	cmd.Flags().BoolVar(&published, "published", false, "only published docs")
	cmd.Flags().BoolVar(&starred, "starred", false, "only starred docs")
	cmd.Flags().BoolVar(&inGallery, "in-gallery", false, "only docs in the gallery")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "search term")
	cmd.Flags().StringVar(&opts.SourceDoc, "source-doc", "", "only copies of this doc")
	cmd.Flags().StringVar(&opts.WorkspaceID, "workspace", "", "only docs in this workspace")
	cmd.Flags().StringVar(&opts.FolderID, "folder", "", "only docs in this folder")

	return cmd
}

func newDocsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC",
		Short: "Get doc details",
		Long:  "Display detailed information about a doc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Get(ctx, docID(args[0]))
			if err != nil {
				return fmt.Errorf("failed to get doc: %w", err)
			}

			return renderDoc(cmd, handle.Snapshot())
		},
	}
}

func renderDoc(cmd *cobra.Command, doc *coda.Doc) error {
	pairs := []string{
		"ID", doc.ID,
		"Name", doc.Name,
		"Owner", doc.OwnerName + " <" + doc.Owner + ">",
		"Browser Link", doc.BrowserLink,
		"Created", formatTime(doc.CreatedAt),
		"Updated", formatTime(doc.UpdatedAt),
	}

	if doc.DocSize != nil {
		pairs = append(pairs,
			"Pages", strconv.Itoa(doc.DocSize.PageCount),
			"Tables and Views", strconv.Itoa(doc.DocSize.TableAndViewCount),
			"Rows", strconv.Itoa(doc.DocSize.TotalRowCount),
			"Over API Size Limit", yesNo(doc.DocSize.OverAPISizeLimit),
		)
	}

	if doc.Published != nil {
		pairs = append(pairs, "Published", doc.Published.BrowserLink, "Publish Mode", string(doc.Published.Mode))
	}

	return renderOutput(cmd.OutOrStdout(), doc, propertyTable(pairs...))
}

func newDocsCreateCommand() *cobra.Command {
	var req coda.DocCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a doc",
		Long:  "Create a new doc, optionally as a copy of another doc",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Create(ctx, &req)
			if err != nil {
				return fmt.Errorf("failed to create doc: %w", err)
			}

			return renderDoc(cmd, handle.Snapshot())
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "doc title")
	cmd.Flags().StringVar(&req.SourceDoc, "source-doc", "", "doc to copy")
	cmd.Flags().StringVar(&req.Timezone, "timezone", "", "IANA time zone of the doc")
	cmd.Flags().StringVar(&req.FolderID, "folder", "", "folder to create the doc in")

	return cmd
}

func newDocsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete DOC",
		Short: "Delete a doc",
		Long:  "Delete a doc permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := docID(args[0])

			if !force && !confirm(cmd, fmt.Sprintf("Really delete doc '%s'?", id)) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")

				return nil
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := client.Docs().Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete doc: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully deleted doc '%s'\n", id)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}

func newDocsShareMetadataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "share-metadata DOC",
		Short: "Show sharing capabilities",
		Long:  "Display what the caller may do with the sharing settings of a doc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			metadata, err := client.Docs().Handle(docID(args[0])).ShareMetadata(ctx)
			if err != nil {
				return fmt.Errorf("failed to get sharing metadata: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), metadata, propertyTable(
				"Can Share", yesNo(metadata.CanShare),
				"Can Share With Org", yesNo(metadata.CanShareWithOrg),
				"Can Copy", yesNo(metadata.CanCopy),
			))
		},
	}
}

func newDocsPublishCommand() *cobra.Command {
	var (
		req                      coda.PublishRequest
		mode                     string
		discoverable, earnCredit bool
		wait                     bool
	)

	cmd := &cobra.Command{
		Use:   "publish DOC",
		Short: "Publish a doc",
		Long:  "Publish a doc to the web, optionally listing it in the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Mode = coda.PublishMode(mode)

			if cmd.Flags().Changed("discoverable") {
				req.Discoverable = coda.Bool(discoverable)
			}

			if cmd.Flags().Changed("earn-credit") {
				req.EarnCredit = coda.Bool(earnCredit)
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			mutation, err := client.Docs().Handle(docID(args[0])).Publish(ctx, &req)
			if err != nil {
				return fmt.Errorf("failed to publish doc: %w", err)
			}

			return waitForMutation(ctx, cmd.OutOrStdout(), mutation, wait)
		},
	}

	cmd.Flags().StringVar(&req.Slug, "slug", "", "URL slug of the published doc")
	cmd.Flags().StringVar(&mode, "mode", "", "interaction mode (view, play, edit)")
	cmd.Flags().BoolVar(&discoverable, "discoverable", false, "list the doc in the gallery")
	cmd.Flags().BoolVar(&earnCredit, "earn-credit", false, "require sign in to earn credit")
	cmd.Flags().StringSliceVar(&req.CategoryNames, "category", nil, "gallery category (repeatable)")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the change has been applied")

	return cmd
}

func newDocsUnpublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish DOC",
		Short: "Unpublish a doc",
		Long:  "Stop publishing a doc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := client.Docs().Handle(docID(args[0])).Unpublish(ctx); err != nil {
				return fmt.Errorf("failed to unpublish doc: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully unpublished doc '%s'\n", args[0])

			return nil
		},
	}
}
