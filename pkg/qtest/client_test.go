package qtest_test

import (
	"testing"

	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *qtest.Config
		wantErr error
		invalid bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: qtest.ErrConfigRequired,
		},
		{
			name:    "password grant",
			config:  &qtest.Config{Subdomain: "acme", Username: "alice", Password: "s3cret"},
			wantErr: nil,
		},
		{
			name:    "static token with base URL",
			config:  &qtest.Config{BaseURL: "https://qtest.internal.example.com", AccessToken: "abc"},
			wantErr: nil,
		},
		{
			name:    "no host",
			config:  &qtest.Config{AccessToken: "abc"},
			wantErr: qtest.ErrSubdomainRequired,
		},
		{
			name:    "no credentials",
			config:  &qtest.Config{Subdomain: "acme"},
			wantErr: qtest.ErrCredentialsRequired,
		},
		{
			name:    "username without password",
			config:  &qtest.Config{Subdomain: "acme", Username: "alice"},
			invalid: true,
		},
		{
			name:    "malformed base URL",
			config:  &qtest.Config{BaseURL: "not a url", AccessToken: "abc"},
			invalid: true,
		},
		{
			name:    "negative retries",
			config:  &qtest.Config{Subdomain: "acme", AccessToken: "abc", RetryMax: -1},
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()

			switch {
			case tt.invalid:
				require.Error(t, err)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestTestCycleParent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ROOT", qtest.TestCycleParentRoot.String())
	assert.Equal(t, "release", qtest.TestCycleParentRelease.String())
	assert.Equal(t, "test-cycle", qtest.TestCycleParentTestCycle.String())

	assert.True(t, qtest.TestCycleParentRelease.Valid())
	assert.False(t, qtest.TestCycleParent("folder").Valid())
	assert.False(t, qtest.TestCycleParent("").Valid())
}
