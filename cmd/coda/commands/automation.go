package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewAutomationCommand creates the automation command group
func NewAutomationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "automation",
		Aliases: []string{"automations", "hooks"},
		Short:   "Trigger doc automations",
		Long:    "Trigger automations whose rule is invoked by a webhook",
	}

	cmd.AddCommand(newAutomationTriggerCommand())

	return cmd
}

func newAutomationTriggerCommand() *cobra.Command {
	var (
		payload     string
		payloadFile string
		wait        bool
	)

	cmd := &cobra.Command{
		Use:   "trigger DOC RULE_ID",
		Short: "Trigger an automation",
		Long: `Trigger a webhook-invoked automation rule.

The JSON payload is given with --payload, or read from --payload-file
("-" reads standard input). Without either an empty object is sent.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(cmd, payload, payloadFile)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			mutation, err := client.Docs().Handle(docID(args[0])).Automations().Trigger(ctx, args[1], body)
			if err != nil {
				return fmt.Errorf("failed to trigger automation: %w", err)
			}

			return waitForMutation(ctx, cmd.OutOrStdout(), mutation, wait)
		},
	}

	cmd.Flags().StringVarP(&payload, "payload", "p", "", "JSON payload")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "file holding the JSON payload")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait until the automation has run")
	cmd.MarkFlagsMutuallyExclusive("payload", "payload-file")

	return cmd
}

// readPayload returns the payload as raw JSON, or nil when none was given.
func readPayload(cmd *cobra.Command, payload, payloadFile string) (interface{}, error) {
	data := []byte(payload)

	switch payloadFile {
	case "":
	case "-":
		stdin, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}

		data = stdin
	default:
		// #nosec G304
		file, err := os.ReadFile(payloadFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}

		data = file
	}

	if len(data) == 0 {
		return nil, nil //nolint:nilnil // no payload sends an empty object
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: payload", ErrInvalidJSON)
	}

	return json.RawMessage(data), nil
}
