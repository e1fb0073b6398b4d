package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/qtest/internal/codec"
	"github.com/fivetwenty-io/qtest/internal/http"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

// UsersClient implements qtest.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// Get implements qtest.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, id int64) (*qtest.User, error) {
	path, err := userPath(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	user, err := codec.Decode[qtest.User](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing user: %w", err)
	}

	return user, nil
}
