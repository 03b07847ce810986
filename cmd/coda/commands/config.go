package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mackiedrew/coda-client/internal/auth"
	"github.com/mackiedrew/coda-client/internal/client"
	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/coda"
	"github.com/mackiedrew/coda-client/pkg/codaclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file.
type Config struct {
	API            string     `json:"api,omitempty"              yaml:"api,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenUpdatedAt *time.Time `json:"token_updated_at,omitempty" yaml:"token_updated_at,omitempty"`
	Output         string     `json:"output,omitempty"           yaml:"output,omitempty"`
	RetryMax       int        `json:"retry_max,omitempty"        yaml:"retry_max,omitempty"`
}

// configKeys are the keys accepted by config set and unset.
var configKeys = map[string]func(config *Config, value string) error{
	"api": func(config *Config, value string) error {
		if value != "" {
			value = codaclient.NormalizeBaseURL(value)
		}

		config.API = value

		return nil
	},
	"token": func(config *Config, value string) error {
		config.Token = value

		return nil
	},
	"output": func(config *Config, value string) error {
		switch value {
		case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value

			return nil
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedOutput, value)
		}
	},
	"retry_max": func(config *Config, value string) error {
		if value == "" {
			config.RetryMax = 0

			return nil
		}

		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidRetryMax, value)
		}

		config.RetryMax = n

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration, with the token masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = maskToken(config.Token)
			}

			updated := ""
			if config.TokenUpdatedAt != nil {
				updated = formatTime(*config.TokenUpdatedAt)
			}

			return renderOutput(cmd.OutOrStdout(), config, propertyTable(
				"Config File", configFilePath(),
				"API", codaclient.NormalizeBaseURL(config.API),
				"Token", config.Token,
				"Token Updated", updated,
				"Output", config.Output,
				"Retry Max", strconv.Itoa(config.RetryMax),
			))
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd, args[0], args[1], "Set")
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + configKeyList(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd, args[0], "", "Unset")
		},
	}
}

func updateConfigValue(cmd *cobra.Command, key, value, verb string) error {
	apply, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownConfigKey, key, configKeyList())
	}

	config, err := readConfigFile()
	if err != nil {
		return err
	}

	if err := apply(config, value); err != nil {
		return err
	}

	if key == "token" {
		stampToken(config)
	}

	if err := saveConfigStruct(config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, key)

	return nil
}

func configKeyList() string {
	keys := make([]string, 0, len(configKeys))
	for key := range configKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return strings.Join(keys, ", ")
}

// loadConfig returns the effective configuration: flags, then CODA_*
// environment variables, then the config file.
func loadConfig() *Config {
	return &Config{
		API:            viper.GetString("api"),
		Token:          viper.GetString("token"),
		TokenUpdatedAt: fileTokenUpdatedAt(),
		Output:         viper.GetString("output"),
		RetryMax:       viper.GetInt("retry_max"),
	}
}

func fileTokenUpdatedAt() *time.Time {
	config, err := readConfigFile()
	if err != nil {
		return nil
	}

	return config.TokenUpdatedAt
}

// configFilePath returns the config file in use, defaulting to ~/.coda/config.yml.
func configFilePath() string {
	if path := viper.GetString("config"); path != "" {
		return path
	}

	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ConfigDirName, ConfigFileName)
	}

	return filepath.Join(home, ConfigDirName, ConfigFileName)
}

// readConfigFile reads only what is stored on disk, so that saving it back
// never persists values that came from flags or the environment.
func readConfigFile() (*Config, error) {
	// configFilePath is derived from the user's home or an explicit flag.
	// #nosec G304
	data, err := os.ReadFile(configFilePath())
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile := configFilePath()

	if err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func stampToken(config *Config) {
	if config.Token == "" {
		config.TokenUpdatedAt = nil

		return
	}

	now := time.Now().UTC()
	config.TokenUpdatedAt = &now
}

// newClient builds an API client from the effective configuration. The token
// is served by a config-backed token manager.
func newClient(cmd *cobra.Command) (coda.Client, error) {
	config := loadConfig()
	if config.Token == "" {
		return nil, ErrNotAuthenticated
	}

	verbose := viper.GetBool("verbose")
	apiURL := codaclient.NormalizeBaseURL(config.API)

	clientConfig := &coda.Config{
		BaseURL:  apiURL,
		APIToken: config.Token,
		RetryMax: config.RetryMax,
		Debug:    verbose,
		Logger:   NewLogger(cmd.ErrOrStderr(), verbose),
	}

	if err := clientConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tokenManager := auth.NewConfigTokenManager(func() (string, error) {
		return loadConfig().Token, nil
	}, NewConfigPersister(), apiURL)

	c, err := client.NewWithTokenManager(clientConfig, tokenManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create client with token manager: %w", err)
	}

	return c, nil
}
