//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)

	session := client.Session()
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.TokenType)
}

// TestReleaseAndTestCycleLifecycle creates a release, nests a test cycle under
// it, reads both back and deletes them again.
func TestReleaseAndTestCycleLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	if config.ProjectID == 0 {
		t.Skip("QTEST_PROJECT_ID not set, skipping lifecycle test")
	}

	ctx := context.Background()
	client := config.NewClient(t)

	project, err := client.Projects().Get(ctx, config.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, config.ProjectID, project.ID)

	releases := client.Releases(project.ID)
	cycles := client.TestCycles(project.ID)

	release, err := releases.Create(ctx, &qtest.ReleaseCreateRequest{Name: GenerateTestName("release")})
	require.NoError(t, err)

	defer func() {
		_, _ = releases.Delete(ctx, release.ID)
	}()

	cycle, err := cycles.Create(ctx, &qtest.TestCycleCreateRequest{
		Name:       GenerateTestName("cycle"),
		ParentType: qtest.TestCycleParentRelease,
		ParentID:   release.ID,
	})
	require.NoError(t, err)

	fetched, err := cycles.Get(ctx, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, cycle.Name, fetched.Name)

	list, err := releases.List(ctx)
	require.NoError(t, err)

	found := false
	for _, r := range list {
		if r.ID == release.ID {
			found = true
		}
	}

	assert.True(t, found, "created release missing from list")

	deleted, err := cycles.Delete(ctx, cycle.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = cycles.Get(ctx, cycle.ID)
	assert.True(t, qtest.IsNotFound(err), "expected not found, got %v", err)

	deleted, err = releases.Delete(ctx, release.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestProjectUsers(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	if config.ProjectID == 0 {
		t.Skip("QTEST_PROJECT_ID not set, skipping project users test")
	}

	ctx := context.Background()
	client := config.NewClient(t)

	users, err := client.Projects().Users(ctx, config.ProjectID)
	require.NoError(t, err)
	require.NotEmpty(t, users)

	user, err := client.Users().Get(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, users[0].Username, user.Username)
}
