package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/qtest/internal/codec"
	"github.com/fivetwenty-io/qtest/internal/http"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

// ReleasesClient implements qtest.ReleasesClient for one project.
type ReleasesClient struct {
	httpClient *http.Client
	projectID  int64
}

// NewReleasesClient creates a new releases client scoped to projectID.
func NewReleasesClient(httpClient *http.Client, projectID int64) *ReleasesClient {
	return &ReleasesClient{
		httpClient: httpClient,
		projectID:  projectID,
	}
}

// ProjectID returns the project the client is scoped to.
func (c *ReleasesClient) ProjectID() int64 {
	return c.projectID
}

// Get implements qtest.ReleasesClient.Get.
func (c *ReleasesClient) Get(ctx context.Context, id int64) (*qtest.Release, error) {
	path, err := releasePath(c.projectID, id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting release: %w", err)
	}

	release, err := codec.Decode[qtest.Release](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing release: %w", err)
	}

	return release, nil
}

// List implements qtest.ReleasesClient.List.
func (c *ReleasesClient) List(ctx context.Context) ([]qtest.Release, error) {
	path, err := releasesPath(c.projectID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	releases, err := codec.DecodeList[qtest.Release](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing releases list: %w", err)
	}

	return releases, nil
}

// Create implements qtest.ReleasesClient.Create.
func (c *ReleasesClient) Create(ctx context.Context, request *qtest.ReleaseCreateRequest) (*qtest.Release, error) {
	err := validateRequest(request)
	if err != nil {
		return nil, fmt.Errorf("creating release: %w", err)
	}

	path, err := releasesPath(c.projectID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path, codec.Fields{{Key: "name", Value: request.Name}})
	if err != nil {
		return nil, fmt.Errorf("creating release: %w", err)
	}

	release, err := codec.Decode[qtest.Release](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing release response: %w", err)
	}

	return release, nil
}

// Delete implements qtest.ReleasesClient.Delete. It reports whether the service
// answered with a 2xx status; only a failed round trip is an error.
func (c *ReleasesClient) Delete(ctx context.Context, id int64) (bool, error) {
	path, err := releasePath(c.projectID, id)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Send(ctx, &http.Request{
		Method: nethttp.MethodDelete,
		Path:   path,
	})
	if err != nil {
		return false, fmt.Errorf("deleting release: %w", err)
	}

	return resp.Success(), nil
}
