package client

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/fivetwenty-io/qtest/internal/codec"
	"github.com/fivetwenty-io/qtest/internal/http"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

// ProjectsClient implements qtest.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
	clock      clock.Clock
}

// NewProjectsClient creates a new projects client. The clock stamps the start
// date of created projects; nil uses the wall clock.
func NewProjectsClient(httpClient *http.Client, clk clock.Clock) *ProjectsClient {
	if clk == nil {
		clk = clock.New()
	}

	return &ProjectsClient{
		httpClient: httpClient,
		clock:      clk,
	}
}

// Get implements qtest.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, id int64) (*qtest.Project, error) {
	path, err := projectPath(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	project, err := codec.Decode[qtest.Project](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	return project, nil
}

// List implements qtest.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context) ([]qtest.Project, error) {
	path, err := projectsPath()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects, err := codec.DecodeList[qtest.Project](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing projects list: %w", err)
	}

	return projects, nil
}

// Create implements qtest.ProjectsClient.Create. The start date is the current
// time of the client's clock.
func (c *ProjectsClient) Create(ctx context.Context, request *qtest.ProjectCreateRequest) (*qtest.Project, error) {
	err := validateRequest(request)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	path, err := projectsPath()
	if err != nil {
		return nil, err
	}

	body := codec.Fields{
		{Key: "name", Value: request.Name},
		{Key: "start_date", Value: codec.Now(c.clock)},
		{Key: "description", Value: request.Description},
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	project, err := codec.Decode[qtest.Project](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return project, nil
}

// Users implements qtest.ProjectsClient.Users.
func (c *ProjectsClient) Users(ctx context.Context, projectID int64) ([]qtest.User, error) {
	path, err := projectUsersPath(projectID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing project users: %w", err)
	}

	users, err := codec.DecodeList[qtest.User](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing project users list: %w", err)
	}

	return users, nil
}
