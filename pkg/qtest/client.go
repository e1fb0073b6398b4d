package qtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrSubdomainRequired   = errors.New("subdomain or base URL is required")
	ErrCredentialsRequired = errors.New("username and password or an access token are required")
)

// ProjectsClient exposes the project endpoints.
type ProjectsClient interface {
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, request *ProjectCreateRequest) (*Project, error)
	Users(ctx context.Context, projectID int64) ([]User, error)
}

// ReleasesClient exposes the release endpoints of one project.
type ReleasesClient interface {
	Get(ctx context.Context, id int64) (*Release, error)
	List(ctx context.Context) ([]Release, error)
	Create(ctx context.Context, request *ReleaseCreateRequest) (*Release, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TestCyclesClient exposes the test cycle endpoints of one project.
type TestCyclesClient interface {
	Get(ctx context.Context, id int64) (*TestCycle, error)
	List(ctx context.Context) ([]TestCycle, error)
	Create(ctx context.Context, request *TestCycleCreateRequest) (*TestCycle, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UsersClient exposes the user endpoints.
type UsersClient interface {
	Get(ctx context.Context, id int64) (*User, error)
}

// ResourceClients provides access to all resource-specific clients.
// Every returned client shares the parent's authenticated transport.
type ResourceClients interface {
	Projects() ProjectsClient
	Releases(projectID int64) ReleasesClient
	TestCycles(projectID int64) TestCyclesClient
	Users() UsersClient
}

// Client is the top-level qTest client.
type Client interface {
	ResourceClients

	// Session returns a copy of the session the client authenticated with.
	Session() SessionInfo
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a qtest.Client.
//
// # Authentication precedence
//
//  1. AccessToken: used directly, no token exchange is made.
//  2. Username/Password: one OAuth password grant against /oauth/token when the
//     client is constructed. The token is never refreshed automatically; an
//     expired token surfaces as a 401 StatusError.
//  3. No credentials: construction fails with ErrCredentialsRequired.
//
// # Retries
//
// Every operation is exactly one round trip unless RetryMax is set. Retries
// only apply to connection errors, 429 and 5xx responses.
type Config struct {
	// Subdomain selects https://{subdomain}.qtestnet.com.
	Subdomain string `validate:"required_without=BaseURL"`
	// BaseURL overrides the host derived from Subdomain. Without a Subdomain,
	// the first label of its host name is the tenant sent to the token
	// endpoint.
	BaseURL string `validate:"omitempty,url"`

	// Username and Password drive the OAuth password grant.
	Username string `validate:"required_with=Password"`
	Password string `validate:"required_with=Username"`

	// AccessToken skips authentication. TokenType defaults to "bearer".
	AccessToken string
	TokenType   string

	// HTTPTimeout bounds every request. Defaults to 30s.
	HTTPTimeout time.Duration `validate:"gte=0"`
	// RetryMax enables retries on connection errors, 429 and 5xx. Zero keeps one
	// round trip per call.
	RetryMax     int           `validate:"gte=0"`
	RetryWaitMin time.Duration `validate:"gte=0"`
	RetryWaitMax time.Duration `validate:"gte=0"`
	// RequestsPerSecond enables client-side rate limiting when positive.
	RequestsPerSecond float64 `validate:"gte=0"`

	// Debug enables HTTP request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Headers are set on every request, the token exchange included.
	Headers map[string]string
	// RequestInterceptors and ResponseInterceptors run after the built-in
	// request ID and rate limit interceptors, in the order given.
	RequestInterceptors  []RequestInterceptor
	ResponseInterceptors []ResponseInterceptor
	// Metrics, when set, records per-endpoint call counts and latency.
	Metrics *MetricsCollector
	// Clock stamps project creation dates. Defaults to the wall clock.
	Clock clock.Clock
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	err := validator.New().Struct(c)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				if fieldErr.Field() == "Subdomain" {
					return ErrSubdomainRequired
				}
			}
		}

		return fmt.Errorf("invalid config: %w", err)
	}

	if c.AccessToken == "" && c.Username == "" {
		return ErrCredentialsRequired
	}

	return nil
}
