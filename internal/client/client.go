package client

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"

	"github.com/benbjohnson/clock"
	"github.com/fivetwenty-io/qtest/internal/auth"
	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/internal/http"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Client implements the qtest.Client interface. Every resource client it hands
// out shares its authenticated transport and host.
type Client struct {
	httpClient *http.Client
	store      *auth.TokenStore
	baseURL    string
	logger     qtest.Logger
	clock      clock.Clock
}

// New creates a new qTest client.
//
// An AccessToken in the config is used as is. Otherwise the username and
// password are exchanged for a session with a single password grant; a failed
// exchange is returned as *qtest.AuthenticationError and nothing is retried.
func New(ctx context.Context, config *qtest.Config) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	baseURL, err := resolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	interceptors := createInterceptorChain(config)
	store := auth.NewTokenStore()

	session, err := createSession(ctx, config, baseURL, interceptors)
	if err != nil {
		return nil, err
	}

	store.Set(session)

	httpOpts := createHTTPClientOptions(config, interceptors)
	httpOpts = append(httpOpts, createRetryOptions(config)...)
	httpOpts = append(httpOpts, http.WithTransportDecorator(func(base nethttp.RoundTripper) nethttp.RoundTripper {
		return auth.NewTransport(store, base)
	}))

	return newClient(http.NewClient(baseURL, httpOpts...), store, config), nil
}

// NewWithSession creates a client around an existing session without any
// token exchange.
func NewWithSession(config *qtest.Config, session *auth.Session) (*Client, error) {
	if !session.Valid() {
		return nil, auth.ErrNoSession
	}

	baseURL, err := resolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	store := auth.NewTokenStore()
	store.Set(session)

	httpOpts := createHTTPClientOptions(config, createInterceptorChain(config))
	httpOpts = append(httpOpts, createRetryOptions(config)...)
	httpOpts = append(httpOpts, http.WithTransportDecorator(func(base nethttp.RoundTripper) nethttp.RoundTripper {
		return auth.NewTransport(store, base)
	}))

	return newClient(http.NewClient(baseURL, httpOpts...), store, config), nil
}

func newClient(httpClient *http.Client, store *auth.TokenStore, config *qtest.Config) *Client {
	clk := config.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Client{
		httpClient: httpClient,
		store:      store,
		baseURL:    httpClient.BaseURL(),
		logger:     config.Logger,
		clock:      clk,
	}
}

// resolveBaseURL returns the configured base URL or the hosted tenant URL.
func resolveBaseURL(config *qtest.Config) (string, error) {
	if config == nil {
		return "", qtest.ErrConfigRequired
	}

	if config.BaseURL != "" {
		return config.BaseURL, nil
	}

	if config.Subdomain == "" {
		return "", ErrBaseURLRequired
	}

	return HostURL(config.Subdomain)
}

// createSession builds the session from a static token or a password grant.
func createSession(ctx context.Context, config *qtest.Config, baseURL string, interceptors *qtest.InterceptorChain) (*auth.Session, error) {
	if config.AccessToken != "" {
		tokenType := config.TokenType
		if tokenType == "" {
			tokenType = constants.DefaultTokenType
		}

		return &auth.Session{
			AccessToken: config.AccessToken,
			TokenType:   tokenType,
			Scope:       auth.ParseScope(""),
		}, nil
	}

	// The token endpoint gets its own client: no credentials decorator and no
	// retries, so a failed login is exactly one round trip.
	authClient := http.NewClient(baseURL, createHTTPClientOptions(config, interceptors)...)

	session, err := auth.Authenticate(ctx, authClient, constants.TokenPath, TenantName(config.Subdomain, baseURL), auth.Credentials{
		Username: config.Username,
		Password: config.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	if config.Logger != nil {
		config.Logger.Debug("authenticated", map[string]interface{}{
			"username":   config.Username,
			"token_type": session.TokenType,
			"scope":      session.Scope.String(),
		})
	}

	return session, nil
}

// createInterceptorChain wires request IDs, rate limiting, static headers,
// metrics and finally the caller's own interceptors.
func createInterceptorChain(config *qtest.Config) *qtest.InterceptorChain {
	chain := qtest.NewInterceptorChain()
	chain.AddRequestInterceptor(qtest.RequestIDInterceptor())

	if config.RequestsPerSecond > 0 {
		chain.AddRequestInterceptor(qtest.RateLimitInterceptor(config.RequestsPerSecond))
	}

	if len(config.Headers) > 0 {
		chain.AddRequestInterceptor(qtest.HeaderInterceptor(config.Headers))
	}

	if config.Metrics != nil {
		chain.AddRequestInterceptor(qtest.MetricsRequestInterceptor(config.Metrics))
		chain.AddResponseInterceptor(qtest.MetricsResponseInterceptor(config.Metrics))
	}

	for _, interceptor := range config.RequestInterceptors {
		chain.AddRequestInterceptor(interceptor)
	}

	for _, interceptor := range config.ResponseInterceptors {
		chain.AddResponseInterceptor(interceptor)
	}

	return chain
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *qtest.Config, interceptors *qtest.InterceptorChain) []http.Option {
	httpOpts := []http.Option{http.WithInterceptors(interceptors)}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// createRetryOptions enables retries for resource calls when configured.
func createRetryOptions(config *qtest.Config) []http.Option {
	if config.RetryMax <= 0 {
		return nil
	}

	retryWaitMin := constants.DefaultRetryWaitMin
	retryWaitMax := constants.DefaultRetryWaitMax

	if config.RetryWaitMin > 0 {
		retryWaitMin = config.RetryWaitMin
	}

	if config.RetryWaitMax > 0 {
		retryWaitMax = config.RetryWaitMax
	}

	return []http.Option{http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax)}
}

// Resource client accessors

// Projects implements qtest.Client.Projects.
func (c *Client) Projects() qtest.ProjectsClient {
	return NewProjectsClient(c.httpClient, c.clock)
}

// ProjectClient is an alias of Projects.
func (c *Client) ProjectClient() qtest.ProjectsClient {
	return c.Projects()
}

// Releases implements qtest.Client.Releases.
func (c *Client) Releases(projectID int64) qtest.ReleasesClient {
	return NewReleasesClient(c.httpClient, projectID)
}

// ReleaseClient is an alias of Releases.
func (c *Client) ReleaseClient(projectID int64) qtest.ReleasesClient {
	return c.Releases(projectID)
}

// TestCycles implements qtest.Client.TestCycles.
func (c *Client) TestCycles(projectID int64) qtest.TestCyclesClient {
	return NewTestCyclesClient(c.httpClient, projectID)
}

// TestCycleClient is an alias of TestCycles.
func (c *Client) TestCycleClient(projectID int64) qtest.TestCyclesClient {
	return c.TestCycles(projectID)
}

// Users implements qtest.Client.Users.
func (c *Client) Users() qtest.UsersClient {
	return NewUsersClient(c.httpClient)
}

// UserClient is an alias of Users.
func (c *Client) UserClient() qtest.UsersClient {
	return c.Users()
}

// Session implements qtest.Client.Session.
func (c *Client) Session() qtest.SessionInfo {
	return c.store.Get().Info()
}

// GetSession returns a copy of the client's session.
func (c *Client) GetSession() *auth.Session {
	return c.store.Get()
}

// BaseURL returns the host every request is sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// loggerAdapter adapts qtest.Logger to http.Logger.
type loggerAdapter struct {
	logger qtest.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
