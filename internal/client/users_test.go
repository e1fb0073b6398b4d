package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

func TestUsersClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[qtest.User]{
		{
			Name:         "existing user",
			ID:           3,
			ExpectedPath: "/api/v3/users/3",
			StatusCode:   http.StatusOK,
			Response:     qtest.User{ID: 3, Username: "alice@example.com", FirstName: "Alice"},
		},
		{
			Name:         "missing user",
			ID:           4,
			ExpectedPath: "/api/v3/users/4",
			StatusCode:   http.StatusNotFound,
			Response:     qtest.ErrorBody{Message: "User not found"},
			WantErr:      true,
			ErrCheck:     qtest.IsNotFound,
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, int64) (*qtest.User, error) {
		return c.Users().Get
	})
}
