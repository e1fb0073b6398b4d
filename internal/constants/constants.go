package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750
	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Configuration locations.
const (
	// ConfigDirName is the directory below $HOME holding the CLI configuration.
	ConfigDirName = ".qtest"
	// ConfigFileName is the configuration file name without extension.
	ConfigFileName = "config"
	// ConfigFileType is the configuration file extension.
	ConfigFileType = "yml"
	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "QTEST"
)

// Service endpoints.
const (
	// HostTemplate expands to the hosted qTest Manager instance of a tenant.
	HostTemplate = "https://{subdomain}.qtestnet.com"
	// TokenPath is the OAuth password grant endpoint.
	TokenPath = "/oauth/token"
	// ProjectsTemplate addresses the project collection or one project.
	ProjectsTemplate = "/api/v3/projects{/projectId}"
	// ProjectUsersTemplate addresses the users assigned to a project.
	ProjectUsersTemplate = "/api/v3/projects/{projectId}/users"
	// ReleasesTemplate addresses the releases of a project or one release.
	ReleasesTemplate = "/api/v3/projects/{projectId}/releases{/releaseId}"
	// TestCyclesTemplate addresses the test cycles of a project or one test cycle.
	TestCyclesTemplate = "/api/v3/projects/{projectId}/test-cycles{/testCycleId}{?parentType,parentId}"
	// UsersTemplate addresses one user.
	UsersTemplate = "/api/v3/users/{userId}"
)

// Authentication.
const (
	// GrantTypePassword is the OAuth grant used to log in.
	GrantTypePassword = "password"
	// DefaultTokenType is the token type of a configured access token when
	// none is given.
	DefaultTokenType = "bearer"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits, used only when retries are enabled.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second
	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Client identification.
const (
	// Version is the library version reported in the User-Agent header.
	Version = "0.1.0"
	// DefaultUserAgent is sent when the configuration does not override it.
	DefaultUserAgent = "qtest-go/" + Version
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"
	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
	// StringTruncationLength is the default length for truncating strings.
	StringTruncationLength = 60
	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"
	// FormatJSON for JSON output format.
	FormatJSON = "json"
	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Command argument counts.
const (
	// OneArgumentRequired indicates commands requiring exactly 1 argument.
	OneArgumentRequired = 1
	// TwoArgumentsRequired indicates commands requiring exactly 2 arguments.
	TwoArgumentsRequired = 2
)
