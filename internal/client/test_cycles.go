package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/qtest/internal/codec"
	"github.com/fivetwenty-io/qtest/internal/http"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

// TestCyclesClient implements qtest.TestCyclesClient for one project.
type TestCyclesClient struct {
	httpClient *http.Client
	projectID  int64
}

// NewTestCyclesClient creates a new test cycles client scoped to projectID.
func NewTestCyclesClient(httpClient *http.Client, projectID int64) *TestCyclesClient {
	return &TestCyclesClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// ProjectID returns the project the client is scoped to.
func (c *TestCyclesClient) ProjectID() int64 {
	return c.projectID
}

// Get implements qtest.TestCyclesClient.Get.
func (c *TestCyclesClient) Get(ctx context.Context, id int64) (*qtest.TestCycle, error) {
	path, err := testCyclePath(c.projectID, id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting test cycle: %w", err)
	}

	cycle, err := codec.Decode[qtest.TestCycle](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing test cycle: %w", err)
	}

	return cycle, nil
}

// List implements qtest.TestCyclesClient.List.
func (c *TestCyclesClient) List(ctx context.Context) ([]qtest.TestCycle, error) {
	path, err := testCyclesPath(c.projectID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing test cycles: %w", err)
	}

	cycles, err := codec.DecodeList[qtest.TestCycle](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing test cycles list: %w", err)
	}

	return cycles, nil
}

// Create implements qtest.TestCyclesClient.Create. An empty ParentType places
// the cycle at the project root.
func (c *TestCyclesClient) Create(ctx context.Context, request *qtest.TestCycleCreateRequest) (*qtest.TestCycle, error) {
	err := validateRequest(request)
	if err != nil {
		return nil, fmt.Errorf("creating test cycle: %w", err)
	}

	parentType := request.ParentType
	if parentType == "" {
		parentType = qtest.TestCycleParentRoot
	}

	if !parentType.Valid() {
		return nil, fmt.Errorf("creating test cycle: %w", &qtest.ValidationError{
			Message: fmt.Sprintf("unknown parent type %q", parentType),
		})
	}

	path, err := testCycleCreatePath(c.projectID, parentType, request.ParentID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, codec.Fields{{Key: "name", Value: request.Name}})
	if err != nil {
		return nil, fmt.Errorf("creating test cycle: %w", err)
	}

	cycle, err := codec.Decode[qtest.TestCycle](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing test cycle response: %w", err)
	}

	return cycle, nil
}

// Delete implements qtest.TestCyclesClient.Delete. It reports whether the
// service answered with a 2xx status; only a failed round trip is an error.
func (c *TestCyclesClient) Delete(ctx context.Context, id int64) (bool, error) {
	path, err := testCyclePath(c.projectID, id)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Send(ctx, &http.Request{
		Method: nethttp.MethodDelete,
		Path:   path,
	})
	if err != nil {
		return false, fmt.Errorf("deleting test cycle: %w", err)
	}

	return resp.Success(), nil
}
