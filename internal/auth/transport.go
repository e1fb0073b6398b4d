package auth

import (
	"net/http"

	"golang.org/x/oauth2"
)

// storeTokenSource serves the session currently held by a TokenStore.
type storeTokenSource struct {
	store *TokenStore
}

func (s storeTokenSource) Token() (*oauth2.Token, error) {
	session := s.store.Get()
	if !session.Valid() {
		return nil, ErrNoSession
	}

	return session.Token(), nil
}

// NewTokenSource returns an oauth2.TokenSource backed by store.
func NewTokenSource(store *TokenStore) oauth2.TokenSource {
	return storeTokenSource{store: store}
}

// NewTransport wraps base so every request carries
// "Authorization: <token type> <access token>" from the store. The token type is
// formatted as oauth2.Token.Type does, "Bearer" when absent.
func NewTransport(store *TokenStore, base http.RoundTripper) *oauth2.Transport {
	return &oauth2.Transport{
		Source: NewTokenSource(store),
		Base:   base,
	}
}
