package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Subdomain string `json:"subdomain,omitempty" yaml:"subdomain,omitempty"`
	BaseURL   string `json:"base_url,omitempty"  yaml:"base_url,omitempty"`
	Username  string `json:"username,omitempty"  yaml:"username,omitempty"`
	Project   int64  `json:"project,omitempty"   yaml:"project,omitempty"`
	Output    string `json:"output,omitempty"    yaml:"output,omitempty"`

	// Session obtained by 'qtest login'. Passwords are never stored.
	Token        string   `json:"token,omitempty"         yaml:"token,omitempty"`
	TokenType    string   `json:"token_type,omitempty"    yaml:"token_type,omitempty"`
	RefreshToken string   `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Scope        []string `json:"scope,omitempty"         yaml:"scope,omitempty"`
	Agent        string   `json:"agent,omitempty"         yaml:"agent,omitempty"`
}

// settableKeys lists the keys accepted by 'config set' and 'config unset'.
var settableKeys = map[string]func(config *Config, value string) error{
	"subdomain": func(config *Config, value string) error {
		config.Subdomain = value

		return nil
	},
	"base_url": func(config *Config, value string) error {
		config.BaseURL = value

		return nil
	},
	"username": func(config *Config, value string) error {
		config.Username = value

		return nil
	},
	"project": func(config *Config, value string) error {
		if value == "" {
			config.Project = 0

			return nil
		}

		id, err := parseID(value)
		if err != nil {
			return err
		}

		config.Project = id

		return nil
	},
	"output": func(config *Config, value string) error {
		if value != "" && !validOutputFormat(value) {
			return constants.ErrInvalidOutputFmt
		}

		config.Output = value

		return nil
	},
	"token": func(config *Config, value string) error {
		config.Token = value

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the qtest CLI configuration stored in $HOME/.qtest/config.yml",
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
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskedConfig(loadConfig())

			return renderOutput(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd.OutOrStdout(), args[0], "")
		},
	}
}

func updateConfigValue(w io.Writer, key, value string) error {
	setter, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	config, err := loadStoredConfig()
	if err != nil {
		return err
	}

	err = setter(config, value)
	if err != nil {
		return err
	}

	err = saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if value == "" {
		_, _ = fmt.Fprintf(w, "Unset %s\n", key)
	} else {
		_, _ = fmt.Fprintf(w, "Set %s\n", key)
	}

	return nil
}

func configKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for key := range settableKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// loadConfig returns the effective configuration: the config file overlaid
// with environment variables and command line flags.
func loadConfig() *Config {
	return &Config{
		Subdomain:    viper.GetString("subdomain"),
		BaseURL:      viper.GetString("base_url"),
		Username:     viper.GetString("username"),
		Project:      viper.GetInt64("project"),
		Output:       viper.GetString("output"),
		Token:        viper.GetString("token"),
		TokenType:    viper.GetString("token_type"),
		RefreshToken: viper.GetString("refresh_token"),
		Scope:        viper.GetStringSlice("scope"),
		Agent:        viper.GetString("agent"),
	}
}

// configFilePath returns the file viper read, or $HOME/.qtest/config.yml
// after making sure its directory exists.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, constants.ConfigDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

// loadStoredConfig reads only the config file, so that saving it back does not
// persist values that came from flags or the environment. A missing file is an
// empty config.
func loadStoredConfig() (*Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	data, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Reload so the in-process view matches the file. Flags and environment
	// variables keep their precedence.
	viper.SetConfigFile(configFile)

	err = viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to reload config file: %w", err)
	}

	return nil
}

// applySession copies a fresh session into the config.
func applySession(config *Config, session qtest.SessionInfo) {
	config.Token = session.AccessToken
	config.TokenType = session.TokenType
	config.RefreshToken = session.RefreshToken
	config.Scope = session.Scope
	config.Agent = session.Agent
}

func clearSession(config *Config) {
	applySession(config, qtest.SessionInfo{})
}

func maskedConfig(config *Config) *Config {
	masked := *config
	if masked.Token != "" {
		masked.Token = constants.MaskedSecret
	}

	if masked.RefreshToken != "" {
		masked.RefreshToken = constants.MaskedSecret
	}

	return &masked
}

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Subdomain", orNotAvailable(config.Subdomain)})
	_ = table.Append([]string{"Base URL", orNotAvailable(config.BaseURL)})
	_ = table.Append([]string{"Username", orNotAvailable(config.Username)})
	_ = table.Append([]string{"Default Project", formatOptionalID(config.Project)})
	_ = table.Append([]string{"Output", orNotAvailable(config.Output)})
	_ = table.Append([]string{"Token", orNotAvailable(config.Token)})
	_ = table.Append([]string{"Token Type", orNotAvailable(config.TokenType)})
	_ = table.Append([]string{"Scope", orNotAvailable(strings.Join(config.Scope, " "))})
	_ = table.Append([]string{"Agent", orNotAvailable(config.Agent)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatOptionalID(id int64) string {
	if id == 0 {
		return constants.NotAvailable
	}

	return strconv.FormatInt(id, 10)
}

// encodeJSON writes value as indented JSON.
func encodeJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	return encoder.Encode(value)
}
