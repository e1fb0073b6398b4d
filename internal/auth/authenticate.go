package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/qtest/internal/constants"
	qtesthttp "github.com/fivetwenty-io/qtest/internal/http"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/go-playground/validator/v10"
)

// Doer sends one request without interpreting the status.
type Doer interface {
	Send(ctx context.Context, req *qtesthttp.Request) (*qtesthttp.Response, error)
}

// Credentials are the user's login and password. They are only used for the
// duration of Authenticate.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Authenticate performs the OAuth password grant: a single form POST to
// tokenPath carrying the credentials, with the subdomain as HTTP basic client
// ID and an empty secret. Any failure is reported as *qtest.AuthenticationError.
func Authenticate(ctx context.Context, doer Doer, tokenPath, subdomain string, creds Credentials) (*Session, error) {
	err := validator.New().Struct(creds)
	if err != nil {
		return nil, &qtest.AuthenticationError{Err: fmt.Errorf("validating credentials: %w", err)}
	}

	if tokenPath == "" {
		tokenPath = constants.TokenPath
	}

	resp, err := doer.Send(ctx, &qtesthttp.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Form: url.Values{
			"grant_type": []string{constants.GrantTypePassword},
			"username":   []string{creds.Username},
			"password":   []string{creds.Password},
		},
		Headers: map[string]string{
			"Authorization": BasicClientAuth(subdomain),
		},
	})
	if err != nil {
		return nil, &qtest.AuthenticationError{Err: fmt.Errorf("requesting token: %w", err)}
	}

	if !resp.Success() {
		return nil, &qtest.AuthenticationError{
			StatusCode: resp.StatusCode,
			Message:    qtest.ParseErrorBody(resp.Body),
		}
	}

	session, err := ParseSession(resp.Body)
	if err != nil {
		return nil, &qtest.AuthenticationError{Err: err}
	}

	if !session.Valid() {
		return nil, &qtest.AuthenticationError{Err: ErrNoAccessToken}
	}

	return session, nil
}

// BasicClientAuth returns the Authorization header identifying the tenant to
// the token endpoint.
func BasicClientAuth(subdomain string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(subdomain+":"))
}
