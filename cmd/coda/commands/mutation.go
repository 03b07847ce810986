package commands

import (
	"fmt"
	"time"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewMutationCommand creates the mutation command group
func NewMutationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mutation",
		Aliases: []string{"mutations"},
		Short:   "Follow asynchronous writes",
		Long: `Check on the request ids returned by writes.

Writes are queued by the API and applied a few seconds later. Request
ids are kept for about a day.`,
	}

	cmd.AddCommand(newMutationStatusCommand())
	cmd.AddCommand(newMutationWaitCommand())

	return cmd
}

func newMutationStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status REQUEST_ID",
		Short: "Check a mutation once",
		Long:  "Report whether a queued write has been applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			status, err := client.Mutation(args[0]).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get mutation status: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), status, propertyTable(
				"Request ID", args[0],
				"Completed", yesNo(status.Completed),
				"Warning", status.Warning,
			))
		},
	}
}

type mutationResult struct {
	RequestID string `json:"requestId" yaml:"requestId"`
	Completed bool   `json:"completed" yaml:"completed"`
}

func newMutationWaitCommand() *cobra.Command {
	var (
		interval time.Duration
		attempts int
	)

	cmd := &cobra.Command{
		Use:   "wait REQUEST_ID...",
		Short: "Wait for mutations",
		Long:  "Poll mutations until they have been applied or the attempts run out",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			handles := make([]coda.MutationHandle, 0, len(args))
			for _, id := range args {
				handles = append(handles, client.Mutation(id))
			}

			done, err := coda.WaitAll(ctx, interval, attempts, handles...)

			results := make([]mutationResult, 0, len(args))
			pending := 0

			for i, id := range args {
				completed := i < len(done) && done[i]
				if !completed {
					pending++
				}

				results = append(results, mutationResult{RequestID: id, Completed: completed})
			}

			renderErr := renderOutput(cmd.OutOrStdout(), results, func(table *tablewriter.Table) error {
				table.Header("Request ID", "Completed")

				for _, r := range results {
					if err := table.Append(r.RequestID, yesNo(r.Completed)); err != nil {
						return err
					}
				}

				return nil
			})

			if err != nil {
				return fmt.Errorf("failed to wait for mutations: %w", err)
			}

			if renderErr != nil {
				return renderErr
			}

			if pending > 0 {
				return fmt.Errorf("%w: %d of %d pending", ErrMutationNotCompleted, pending, len(args))
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultMutationPollInterval, "pause between status checks")
	cmd.Flags().IntVar(&attempts, "attempts", constants.DefaultMutationMaxAttempts, "maximum number of status checks")

	return cmd
}
