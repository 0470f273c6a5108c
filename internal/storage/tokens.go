package storage

import (
	"context"
	"fmt"
)

// Field names one stored bearer token.
type Field string

const (
	FieldIDToken      Field = "idToken"
	FieldAccessToken  Field = "accessToken"
	FieldRefreshToken Field = "refreshToken"
)

// TokenSet holds the three opaque bearer tokens issued by the identity
// provider. An empty string means the provider did not return that token.
type TokenSet struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Backend is the key/value primitive a TokenStore persists into. Every
// call is scoped to one session.
type Backend interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID string, values map[string]string) error
	Clear(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

// TokenStore persists the authentication state of a single session.
type TokenStore struct {
	backend   Backend
	sessionID string
}

func NewTokenStore(backend Backend, sessionID string) *TokenStore {
	return &TokenStore{
		backend:   backend,
		sessionID: sessionID,
	}
}

// SessionID returns the session the store is bound to.
func (s *TokenStore) SessionID() string {
	return s.sessionID
}

// Save writes all three fields in one backend call. Empty fields are
// written as empty strings rather than skipped.
func (s *TokenStore) Save(ctx context.Context, tokens TokenSet) error {
	values := map[string]string{
		string(FieldIDToken):      tokens.IDToken,
		string(FieldAccessToken):  tokens.AccessToken,
		string(FieldRefreshToken): tokens.RefreshToken,
	}
	if err := s.backend.Set(ctx, s.sessionID, values); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// Read returns the stored value of field. present is false when the field
// was never written or has been cleared.
func (s *TokenStore) Read(ctx context.Context, field Field) (value string, present bool, err error) {
	value, present, err = s.backend.Get(ctx, s.sessionID, string(field))
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return value, present, nil
}

// Clear removes every stored token of the session.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx, s.sessionID); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

// HasAccessToken reports whether a non-empty access token is stored.
func (s *TokenStore) HasAccessToken(ctx context.Context) (bool, error) {
	token, _, err := s.Read(ctx, FieldAccessToken)
	if err != nil {
		return false, err
	}
	return token != "", nil
}
