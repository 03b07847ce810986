package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPagesCommand creates the pages command group
func NewPagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pages",
		Aliases: []string{"page"},
		Short:   "Manage doc pages",
		Long:    "List, inspect and update the pages of a doc",
	}

	cmd.AddCommand(newPagesListCommand())
	cmd.AddCommand(newPagesGetCommand())
	cmd.AddCommand(newPagesTreeCommand())
	cmd.AddCommand(newPagesUpdateCommand())

	return cmd
}

func newPagesListCommand() *cobra.Command {
	var opts coda.ListOptions

	cmd := &cobra.Command{
		Use:   "list DOC",
		Short: "List pages",
		Long:  "List one page of the pages of a doc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			list, err := client.Docs().Handle(docID(args[0])).Pages().List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to list pages: %w", err)
			}

			out := newListOutput[coda.Page](list)

			err = renderOutput(cmd.OutOrStdout(), out, func(table *tablewriter.Table) error {
				table.Header("ID", "Name", "Parent", "Children")

				for _, page := range out.Items {
					if err := table.Append(page.ID, page.Name, refName(page.Parent), strconv.Itoa(len(page.Children))); err != nil {
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

func newPagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOC PAGE",
		Short: "Get page details",
		Long:  "Display a page, addressed by id or name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handle, err := client.Docs().Handle(docID(args[0])).Pages().Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to get page: %w", err)
			}

			page := handle.Snapshot()

			children := make([]string, 0, len(page.Children))
			for i := range page.Children {
				children = append(children, refName(&page.Children[i]))
			}

			return renderOutput(cmd.OutOrStdout(), page, propertyTable(
				"ID", page.ID,
				"Name", page.Name,
				"Subtitle", page.Subtitle,
				"Content Type", page.ContentType,
				"Hidden", yesNo(page.IsHidden),
				"Parent", refName(page.Parent),
				"Children", strings.Join(children, ", "),
				"Browser Link", page.BrowserLink,
			))
		},
	}
}

func newPagesTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree DOC",
		Short: "Show the page hierarchy",
		Long:  "Load every page of a doc and print them nested under their parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			tree, err := client.Docs().Handle(docID(args[0])).Pages().Tree(ctx)
			if err != nil {
				return fmt.Errorf("failed to load pages: %w", err)
			}

			return renderPageTree(cmd, tree)
		},
	}
}

type pageNode struct {
	ID       string      `json:"id"                 yaml:"id"`
	Name     string      `json:"name"               yaml:"name"`
	Children []*pageNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func renderPageTree(cmd *cobra.Command, tree *coda.PageTree) error {
	var build func(page *coda.Page, seen map[string]bool) *pageNode

	build = func(page *coda.Page, seen map[string]bool) *pageNode {
		node := &pageNode{ID: page.ID, Name: page.Name}
		seen[page.ID] = true

		for _, child := range tree.Children(page.ID) {
			if !seen[child.ID] {
				node.Children = append(node.Children, build(child, seen))
			}
		}

		return node
	}

	seen := make(map[string]bool, tree.Len())
	roots := make([]*pageNode, 0)

	for _, root := range tree.Roots() {
		roots = append(roots, build(root, seen))
	}

	return renderOutput(cmd.OutOrStdout(), roots, func(table *tablewriter.Table) error {
		table.Header("Page", "ID")

		return tree.Walk(func(page *coda.Page, depth int) error {
			return table.Append(strings.Repeat("  ", depth)+page.Name, page.ID)
		})
	})
}

func newPagesUpdateCommand() *cobra.Command {
	var (
		req  coda.PageUpdateRequest
		wait bool
	)

	cmd := &cobra.Command{
		Use:   "update DOC PAGE",
		Short: "Update a page",
		Long:  "Change the name, subtitle, icon or cover image of a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			mutation, err := client.Docs().Handle(docID(args[0])).Pages().Handle(args[1]).Update(ctx, &req)
			if err != nil {
				return fmt.Errorf("failed to update page: %w", err)
			}

			return waitForMutation(ctx, cmd.OutOrStdout(), mutation, wait)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "new page name")
	cmd.Flags().StringVar(&req.Subtitle, "subtitle", "", "new page subtitle")
	cmd.Flags().StringVar(&req.IconName, "icon", "", "new icon name")
	cmd.Flags().StringVar(&req.ImageURL, "image-url", "", "new cover image URL")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the change has been applied")

	return cmd
}
