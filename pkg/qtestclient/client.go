package qtestclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/qtest/internal/client"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

// New creates a new qTest client. With username/password credentials it logs
// in before returning.
func New(ctx context.Context, config *qtest.Config) (qtest.Client, error) {
	if config == nil {
		return nil, qtest.ErrConfigRequired
	}

	normalized := *config

	if normalized.BaseURL != "" {
		baseURL := strings.TrimSuffix(normalized.BaseURL, "/")
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			baseURL = "https://" + baseURL
		}

		normalized.BaseURL = baseURL
	}

	normalized.Subdomain = strings.TrimSpace(normalized.Subdomain)

	qtestClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return qtestClient, nil
}

// NewWithPassword creates a new client for https://{subdomain}.qtestnet.com
// using username/password authentication.
func NewWithPassword(ctx context.Context, subdomain, username, password string) (qtest.Client, error) {
	return New(ctx, &qtest.Config{
		Subdomain: subdomain,
		Username:  username,
		Password:  password,
	})
}

// NewWithToken creates a new client for https://{subdomain}.qtestnet.com with
// an access token obtained earlier.
func NewWithToken(ctx context.Context, subdomain, token string) (qtest.Client, error) {
	return New(ctx, &qtest.Config{
		Subdomain:   subdomain,
		AccessToken: token,
	})
}
