package qtest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorBody is the error document qTest returns with non-2xx responses.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	// ErrorDescription is set by the OAuth token endpoint.
	ErrorDescription string `json:"error_description,omitempty"`
}

// ParseErrorBody extracts a human readable message from an error response body.
// It falls back to the trimmed body text when the body is not an ErrorBody.
func ParseErrorBody(data []byte) string {
	var body ErrorBody

	err := json.Unmarshal(data, &body)
	if err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.ErrorDescription != "":
			return body.ErrorDescription
		case body.Error != "":
			return body.Error
		}
	}

	return strings.TrimSpace(string(data))
}

// AuthenticationError reports a failed OAuth password grant: bad credentials,
// an unreachable token endpoint or a malformed token response.
type AuthenticationError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthenticationError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
	case e.Err != nil:
		return "authentication failed: " + e.Err.Error()
	default:
		return "authentication failed"
	}
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TransportError reports a network or connection failure.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an HTTP 404.
type NotFoundError struct {
	Method  string
	Path    string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: not found: %s", e.Method, e.Path, e.Message)
	}

	return fmt.Sprintf("%s %s: not found", e.Method, e.Path)
}

// ValidationError reports a payload the service rejected, or a request that
// failed local validation before being sent (StatusCode 0).
type ValidationError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *ValidationError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return "invalid request: " + e.Err.Error()
		}

		return "invalid request: " + e.Message
	}

	return fmt.Sprintf("%s %s: rejected with status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that does not match the expected JSON shape.
type DecodeError struct {
	Target string
	Body   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusError reports any other non-2xx response on a read.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}

	return errors.As(err, &notFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	validation := &ValidationError{}

	return errors.As(err, &validation)
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsTransport checks if the error is a transport error.
func IsTransport(err error) bool {
	transport := &TransportError{}

	return errors.As(err, &transport)
}

// IsDecode checks if the error is a decode error.
func IsDecode(err error) bool {
	decode := &DecodeError{}

	return errors.As(err, &decode)
}

// IsUnauthorized checks if the error is a 401, typically an expired token.
func IsUnauthorized(err error) bool {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusUnauthorized
	}

	validation := &ValidationError{}
	if errors.As(err, &validation) {
		return validation.StatusCode == http.StatusUnauthorized
	}

	authErr := &AuthenticationError{}
	if errors.As(err, &authErr) {
		return authErr.StatusCode == http.StatusUnauthorized
	}

	return false
}
