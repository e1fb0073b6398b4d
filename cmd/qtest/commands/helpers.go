package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/internal/logging"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/fivetwenty-io/qtest/pkg/qtestclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// newLogger builds the CLI logger. Debug records, including HTTP traces, are
// only written under --verbose.
func newLogger() *logging.LogrusLogger {
	return logging.New(os.Stderr, viper.GetBool("verbose"))
}

// baseClientConfig returns the client config shared by every command.
func baseClientConfig(config *Config) (*qtest.Config, error) {
	if config.Subdomain == "" && config.BaseURL == "" {
		return nil, constants.ErrNoSubdomain
	}

	verbose := viper.GetBool("verbose")
	logger := newLogger()

	clientConfig := &qtest.Config{
		Subdomain: config.Subdomain,
		BaseURL:   config.BaseURL,
		Logger:    logger,
		Debug:     verbose,
		UserAgent: "qtest-cli/" + constants.Version,
	}

	if verbose {
		clientConfig.RequestInterceptors = []qtest.RequestInterceptor{qtest.LoggingInterceptor(logger)}
		clientConfig.ResponseInterceptors = []qtest.ResponseInterceptor{qtest.LoggingResponseInterceptor(logger)}
	}

	return clientConfig, nil
}

// createClient builds a client from the stored session.
func createClient(ctx context.Context) (qtest.Client, error) {
	config := loadConfig()

	clientConfig, err := baseClientConfig(config)
	if err != nil {
		return nil, err
	}

	if config.Token == "" {
		return nil, constants.ErrNotAuthenticated
	}

	clientConfig.AccessToken = config.Token
	clientConfig.TokenType = config.TokenType

	client, err := qtestclient.New(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func validOutputFormat(format string) bool {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return true
	default:
		return false
	}
}

// renderOutput writes value as JSON or YAML, or calls table for the default
// table format.
func renderOutput(w io.Writer, value interface{}, table func(w io.Writer) error) error {
	output := viper.GetString("output")

	switch output {
	case constants.FormatJSON:
		return encodeJSON(w, value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	case constants.FormatTable, "":
		return table(w)
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFmt, output)
	}
}

// parseID parses a positive resource ID argument.
func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, value)
	}

	return id, nil
}

// resolveProject returns the --project flag, falling back to the configured
// default project.
func resolveProject(cmd *cobra.Command) (int64, error) {
	projectID, err := cmd.Flags().GetInt64("project")
	if err == nil && projectID > 0 {
		return projectID, nil
	}

	projectID = loadConfig().Project
	if projectID > 0 {
		return projectID, nil
	}

	return 0, constants.ErrProjectRequired
}

func addProjectFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Int64P("project", "p", 0, "project ID (defaults to the configured project)")
}

// parseParentType maps the --parent-type flag onto a test cycle parent.
func parseParentType(value string) (qtest.TestCycleParent, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "root":
		return qtest.TestCycleParentRoot, nil
	case "release":
		return qtest.TestCycleParentRelease, nil
	case "test-cycle", "testcycle", "cycle":
		return qtest.TestCycleParentTestCycle, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidParentType, value)
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format(time.RFC3339)
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func truncate(value string) string {
	runes := []rune(value)
	if len(runes) <= constants.StringTruncationLength {
		return value
	}

	return string(runes[:constants.StringTruncationLength-3]) + "..."
}

func reportDeleted(w io.Writer, deleted bool, kind string, id int64) error {
	if !deleted {
		return fmt.Errorf("%w: %s %d", constants.ErrResourceNotDeleted, kind, id)
	}

	_, _ = fmt.Fprintf(w, "Deleted %s %d\n", kind, id)

	return nil
}
