package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fivetwenty-io/qtest/internal/auth"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is the time of the mock clock used by test clients.
var testNow = time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)

// NewTestClient creates a client for baseURL holding a static bearer token.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	mock := clock.NewMock()
	mock.Set(testNow)

	client, err := NewWithSession(&qtest.Config{BaseURL: baseURL, Clock: mock}, &auth.Session{
		AccessToken: "test-token",
		TokenType:   "bearer",
	})
	require.NoError(t, err)

	return client
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           int64
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrCheck     func(error) bool
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           int64
	ExpectedPath string
	StatusCode   int
	Expected     bool
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, int64) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "GET", request.Method)
				assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(testCase.Response)
				}
			}))
			defer server.Close()

			getFn := getFunc(NewTestClient(t, server.URL))
			result, err := getFn(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrCheck != nil {
					assert.True(t, testCase.ErrCheck(err), "unexpected error kind: %v", err)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, int64) (bool, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "DELETE", request.Method)
				writer.WriteHeader(testCase.StatusCode)
			}))
			defer server.Close()

			deleteFn := deleteFunc(NewTestClient(t, server.URL))
			deleted, err := deleteFn(context.Background(), testCase.ID)
			require.NoError(t, err)
			assert.Equal(t, testCase.Expected, deleted)
		})
	}
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	err := json.NewEncoder(writer).Encode(body)
	assert.NoError(t, err)
}
