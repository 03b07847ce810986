package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/mackiedrew/coda-client/pkg/codaclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		token    string
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token",
		Long: `Store a Coda API token in the CLI config file.

The token is read from --token, or prompted for. Unless --no-verify is
given, it is checked against /whoami before being saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				var err error

				token, err = promptToken(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return ErrTokenRequired
			}

			apiURL := codaclient.NormalizeBaseURL(viper.GetString("api"))

			var user *coda.User

			if !noVerify {
				ctx, cancel := commandContext(cmd)
				defer cancel()

				c, err := codaclient.New(ctx, &coda.Config{
					BaseURL:  apiURL,
					APIToken: token,
					Logger:   NewLogger(cmd.ErrOrStderr(), viper.GetBool("verbose")),
				})
				if err != nil {
					return err
				}

				user, err = c.WhoAmI(ctx)
				if err != nil {
					return fmt.Errorf("failed to verify token: %w", err)
				}
			}

			if err := NewConfigPersister().UpdateAPIToken(apiURL, token); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if user != nil {
				_, _ = fmt.Fprintf(out, "Logged in to %s as %s (%s)\n", apiURL, user.Name, user.LoginID)
			} else {
				_, _ = fmt.Fprintf(out, "Token saved for %s\n", apiURL)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token (prompted for when omitted)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "save the token without calling the API")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Long:  "Remove the API token from the CLI config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfigFile()
			if err != nil {
				return err
			}

			config.Token = ""
			stampToken(config)

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

// promptToken reads a token without echo on a terminal, or a single line otherwise.
func promptToken(in io.Reader, prompt io.Writer) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_, _ = fmt.Fprint(prompt, "API token: ")

		secret, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return string(secret), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// maskToken keeps the last characters of a token for display.
func maskToken(token string) string {
	const visible = 4
	if len(token) <= visible {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + token[len(token)-visible:]
}
