package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// setupConfig points viper at a fresh config file and registers the server as
// the qTest host. Commands share viper's global state, so these tests do not
// run in parallel.
func setupConfig(t *testing.T, baseURL, token string) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)
	viper.Set("base_url", baseURL)
	viper.Set("token", token)

	return configFile
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func TestCommandTree(t *testing.T) {
	tests := []struct {
		name        string
		cmd         *cobra.Command
		subcommands []string
	}{
		{"projects", NewProjectsCommand(), []string{"list", "get", "create", "users"}},
		{"releases", NewReleasesCommand(), []string{"list", "get", "create", "delete"}},
		{"test-cycles", NewTestCyclesCommand(), []string{"list", "get", "create", "delete"}},
		{"users", NewUsersCommand(), []string{"get"}},
		{"config", NewConfigCommand(), []string{"show", "set", "unset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cmd.Use)
			assert.Len(t, tt.cmd.Commands(), len(tt.subcommands))

			for _, name := range tt.subcommands {
				sub := findSubcommand(tt.cmd, name)
				require.NotNil(t, sub, "missing subcommand %s", name)
				assert.NotNil(t, sub.RunE)
			}
		})
	}

	t.Run("project flag", func(t *testing.T) {
		flag := NewReleasesCommand().PersistentFlags().Lookup("project")
		require.NotNil(t, flag)
		assert.Equal(t, "p", flag.Shorthand)
	})

	t.Run("parent flags", func(t *testing.T) {
		create := findSubcommand(NewTestCyclesCommand(), "create")
		require.NotNil(t, create)
		assert.Equal(t, "root", create.Flags().Lookup("parent-type").DefValue)
		assert.Equal(t, "0", create.Flags().Lookup("parent-id").DefValue)
	})
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseID(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, constants.ErrInvalidID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParentType(t *testing.T) {
	tests := []struct {
		input   string
		want    qtest.TestCycleParent
		wantErr bool
	}{
		{"", qtest.TestCycleParentRoot, false},
		{"root", qtest.TestCycleParentRoot, false},
		{"ROOT", qtest.TestCycleParentRoot, false},
		{"release", qtest.TestCycleParentRelease, false},
		{"test-cycle", qtest.TestCycleParentTestCycle, false},
		{"module", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseParentType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, constants.ErrInvalidParentType)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))

	long := string(bytes.Repeat([]byte("a"), constants.StringTruncationLength+10))
	got := truncate(long)
	assert.Len(t, got, constants.StringTruncationLength)
	assert.Equal(t, "...", got[len(got)-3:])
}

func TestReleasesCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v3/projects/7/releases":
			_, _ = w.Write([]byte(`[{"id":1,"name":"R1","pid":"RL-1"},{"id":2,"name":"R2","pid":"RL-2"}]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v3/projects/7/releases/1":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	t.Run("list table", func(t *testing.T) {
		setupConfig(t, server.URL, "test-token")

		out, err := runCommand(t, NewReleasesCommand(), "list", "--project", "7")
		require.NoError(t, err)
		assert.Contains(t, out, "RL-1")
		assert.Contains(t, out, "R2")
	})

	t.Run("list json", func(t *testing.T) {
		setupConfig(t, server.URL, "test-token")
		viper.Set("output", constants.FormatJSON)

		out, err := runCommand(t, NewReleasesCommand(), "list", "-p", "7")
		require.NoError(t, err)

		var releases []qtest.Release
		require.NoError(t, json.Unmarshal([]byte(out), &releases))
		require.Len(t, releases, 2)
		assert.Equal(t, "R1", releases[0].Name)
	})

	t.Run("default project from config", func(t *testing.T) {
		setupConfig(t, server.URL, "test-token")
		viper.Set("project", 7)

		out, err := runCommand(t, NewReleasesCommand(), "list")
		require.NoError(t, err)
		assert.Contains(t, out, "RL-2")
	})

	t.Run("project required", func(t *testing.T) {
		setupConfig(t, server.URL, "test-token")

		_, err := runCommand(t, NewReleasesCommand(), "list")
		require.ErrorIs(t, err, constants.ErrProjectRequired)
	})

	t.Run("delete", func(t *testing.T) {
		setupConfig(t, server.URL, "test-token")

		out, err := runCommand(t, NewReleasesCommand(), "delete", "1", "--project", "7")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted release 1")
	})

	t.Run("delete not found", func(t *testing.T) {
		setupConfig(t, server.URL, "test-token")

		_, err := runCommand(t, NewReleasesCommand(), "delete", "9", "--project", "7")
		require.ErrorIs(t, err, constants.ErrResourceNotDeleted)
	})

	t.Run("not logged in", func(t *testing.T) {
		setupConfig(t, server.URL, "")

		_, err := runCommand(t, NewReleasesCommand(), "list", "--project", "7")
		require.ErrorIs(t, err, constants.ErrNotAuthenticated)
	})
}

func TestTestCyclesCreateCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/projects/7/test-cycles", r.URL.Path)
		assert.Equal(t, "parentType=release&parentId=42", r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"id":30,"name":"Sprint 12","pid":"CL-30"}`))
	}))
	defer server.Close()

	setupConfig(t, server.URL, "test-token")
	viper.Set("output", constants.FormatYAML)

	out, err := runCommand(t, NewTestCyclesCommand(),
		"create", "Sprint 12", "--project", "7", "--parent-type", "release", "--parent-id", "42")
	require.NoError(t, err)

	var cycle qtest.TestCycle
	require.NoError(t, yaml.Unmarshal([]byte(out), &cycle))
	assert.Equal(t, int64(30), cycle.ID)
	assert.Equal(t, "CL-30", cycle.PID)
}

func TestLoginCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "alice@example.com", r.PostForm.Get("username"))
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"bearer","refresh_token":"null","scope":"read create","agent":"cli"}`))
	}))
	defer server.Close()

	configFile := setupConfig(t, server.URL, "")

	out, err := runCommand(t, NewLoginCommand(), "--username", "alice@example.com", "--password", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice@example.com")

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "s3cret")

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "fresh", saved.Token)
	assert.Equal(t, "bearer", saved.TokenType)
	assert.Empty(t, saved.RefreshToken)
	assert.Equal(t, []string{"create", "read"}, saved.Scope)
	assert.Equal(t, "alice@example.com", saved.Username)

	t.Run("logout clears session", func(t *testing.T) {
		_, err := runCommand(t, NewLogoutCommand())
		require.NoError(t, err)

		data, err := os.ReadFile(configFile)
		require.NoError(t, err)

		var cleared Config
		require.NoError(t, yaml.Unmarshal(data, &cleared))
		assert.Empty(t, cleared.Token)
		assert.Equal(t, server.URL, cleared.BaseURL)
	})
}

func TestLoginCommand_NoHost(t *testing.T) {
	setupConfig(t, "", "")

	_, err := runCommand(t, NewLoginCommand(), "--username", "alice", "--password", "x")
	require.ErrorIs(t, err, constants.ErrNoSubdomain)
}

func TestConfigCommands(t *testing.T) {
	setupConfig(t, "https://qtest.example.com", "secret-token")

	_, err := runCommand(t, NewConfigCommand(), "set", "subdomain", "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", viper.GetString("subdomain"))

	_, err = runCommand(t, NewConfigCommand(), "set", "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFmt)

	_, err = runCommand(t, NewConfigCommand(), "set", "color", "on")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	_, err = runCommand(t, NewConfigCommand(), "unset", "subdomain")
	require.NoError(t, err)
	assert.Empty(t, viper.GetString("subdomain"))

	viper.Set("output", constants.FormatJSON)

	out, err := runCommand(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, constants.MaskedSecret)
}

func TestConfigSet_KeepsFlagOverridesOutOfFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("subdomain: acme\ntoken: stored-token\n"), constants.ConfigFilePerm))
	viper.SetConfigFile(configFile)
	require.NoError(t, viper.ReadInConfig())

	root := &cobra.Command{Use: "qtest"}
	root.PersistentFlags().String("token", "", "access token")
	require.NoError(t, root.PersistentFlags().Set("token", "flag-token"))
	require.NoError(t, viper.BindPFlag("token", root.PersistentFlags().Lookup("token")))
	viper.Set("base_url", "https://override.example.com")

	_, err := runCommand(t, NewConfigCommand(), "set", "output", constants.FormatJSON)
	require.NoError(t, err)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "flag-token")
	assert.NotContains(t, string(data), "override.example.com")

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "acme", saved.Subdomain)
	assert.Equal(t, "stored-token", saved.Token)
	assert.Equal(t, constants.FormatJSON, saved.Output)
	assert.Empty(t, saved.BaseURL)

	assert.Equal(t, "flag-token", viper.GetString("token"))
	assert.Equal(t, constants.FormatJSON, viper.GetString("output"))
}

func TestBaseClientConfig_VerboseLogging(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config, err := baseClientConfig(&Config{Subdomain: "acme"})
	require.NoError(t, err)
	assert.False(t, config.Debug)
	assert.Empty(t, config.RequestInterceptors)
	assert.Empty(t, config.ResponseInterceptors)

	viper.Set("verbose", true)

	config, err = baseClientConfig(&Config{Subdomain: "acme"})
	require.NoError(t, err)
	assert.True(t, config.Debug)
	assert.Len(t, config.RequestInterceptors, 1)
	assert.Len(t, config.ResponseInterceptors, 1)
}

func TestVersionCommand(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("output", constants.FormatJSON)

	out, err := runCommand(t, NewVersionCommand("1.2.3", "abc123", "2024-03-01"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","built":"2024-03-01"}`, out)
}
