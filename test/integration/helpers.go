//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/fivetwenty-io/qtest/internal/logging"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/fivetwenty-io/qtest/pkg/qtestclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Subdomain string
	BaseURL   string
	Username  string
	Password  string
	ProjectID int64
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	projectID, _ := strconv.ParseInt(os.Getenv("QTEST_PROJECT_ID"), 10, 64)

	return &TestConfig{
		Subdomain: os.Getenv("QTEST_SUBDOMAIN"),
		BaseURL:   os.Getenv("QTEST_BASE_URL"),
		Username:  os.Getenv("QTEST_USERNAME"),
		Password:  os.Getenv("QTEST_PASSWORD"),
		ProjectID: projectID,
		Verbose:   os.Getenv("QTEST_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test unless a host and credentials are set.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Subdomain == "" && config.BaseURL == "" {
		t.Skip("QTEST_SUBDOMAIN not set, skipping integration test")
	}

	if config.Username == "" || config.Password == "" {
		t.Skip("QTEST_USERNAME or QTEST_PASSWORD not set, skipping integration test")
	}
}

// NewClient logs in against the configured instance.
func (config *TestConfig) NewClient(t *testing.T) qtest.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := qtestclient.New(ctx, &qtest.Config{
		Subdomain: config.Subdomain,
		BaseURL:   config.BaseURL,
		Username:  config.Username,
		Password:  config.Password,
		Logger:    logging.New(os.Stderr, config.Verbose),
		Debug:     config.Verbose,
	})
	require.NoError(t, err, "failed to log in")

	return client
}

// GenerateTestName returns a unique name for resources created by a test.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
