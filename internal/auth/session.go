package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"golang.org/x/oauth2"
)

// Static errors for err113 compliance.
var (
	ErrNoAccessToken = errors.New("token response has no access_token")
	ErrNoSession     = errors.New("no session available, authenticate first")

	errNotScalar = errors.New("expected a scalar value")
)

// nullLiteral is sent by the token endpoint in place of a JSON null for some
// fields. It is treated as absent.
const nullLiteral = "null"

// ScopeSet is the set of scopes granted to a session.
type ScopeSet map[string]struct{}

// ParseScope splits a space separated scope string. Runs of whitespace count as
// one separator and an empty string yields an empty set.
func ParseScope(scope string) ScopeSet {
	set := make(ScopeSet)

	for _, s := range strings.Fields(scope) {
		set[s] = struct{}{}
	}

	return set
}

// Has reports whether scope was granted.
func (s ScopeSet) Has(scope string) bool {
	_, ok := s[scope]

	return ok
}

// List returns the scopes sorted.
func (s ScopeSet) List() []string {
	list := make([]string, 0, len(s))
	for scope := range s {
		list = append(list, scope)
	}

	sort.Strings(list)

	return list
}

// String joins the scopes with single spaces.
func (s ScopeSet) String() string {
	return strings.Join(s.List(), " ")
}

// Session is the result of a successful password grant. An empty field was
// absent from the token response.
type Session struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Scope        ScopeSet
	Agent        string
}

// Valid reports whether the session carries an access token.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Scope = make(ScopeSet, len(s.Scope))

	for scope := range s.Scope {
		clone.Scope[scope] = struct{}{}
	}

	return &clone
}

// Token converts the session to an oauth2 token. Expiry is left zero: the
// service does not report it and the session is never refreshed.
func (s *Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		RefreshToken: s.RefreshToken,
	}
}

// Info returns the public view of the session.
func (s *Session) Info() qtest.SessionInfo {
	if s == nil {
		return qtest.SessionInfo{}
	}

	return qtest.SessionInfo{
		TokenType:    s.TokenType,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Scope:        s.Scope.List(),
		Agent:        s.Agent,
	}
}

// sessionFields are the token response fields kept in a Session.
var sessionFields = []string{"access_token", "token_type", "refresh_token", "scope", "agent"}

// ParseSession decodes a token response. Every session field is read as an
// optional string: JSON null and the string "null" are absent, other scalars
// keep their JSON text. Other fields are ignored.
func ParseSession(body []byte) (*Session, error) {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return nil, &qtest.DecodeError{Target: "token response", Body: string(body), Err: err}
	}

	values := make(map[string]string, len(sessionFields))

	for _, key := range sessionFields {
		value, ok := raw[key]
		if !ok {
			continue
		}

		text, err := optionalString(value)
		if err != nil {
			return nil, &qtest.DecodeError{Target: "token response", Body: string(body), Err: fmt.Errorf("field %q: %w", key, err)}
		}

		values[key] = text
	}

	return &Session{
		AccessToken:  values["access_token"],
		TokenType:    values["token_type"],
		RefreshToken: values["refresh_token"],
		Scope:        ParseScope(values["scope"]),
		Agent:        values["agent"],
	}, nil
}

func optionalString(value json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(value)

	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte(nullLiteral)):
		return "", nil
	case trimmed[0] == '"':
		var text string

		err := json.Unmarshal(trimmed, &text)
		if err != nil {
			return "", fmt.Errorf("decoding string: %w", err)
		}

		if text == nullLiteral {
			return "", nil
		}

		return text, nil
	case trimmed[0] == '{', trimmed[0] == '[':
		return "", fmt.Errorf("%w: %s", errNotScalar, trimmed)
	default:
		return string(trimmed), nil
	}
}
