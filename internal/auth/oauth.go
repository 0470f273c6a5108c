package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/regrada-ai/regrada-auth/internal/storage"
)

const maxResponseBytes = 1 << 20

type tokenResponse struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// FederatedSignInURL returns the hosted authorize URL that starts the
// Google sign-in flow.
func (c *Controller) FederatedSignInURL() string {
	return c.oauth.AuthCodeURL("", oauth2.SetAuthURLParam("identity_provider", FederatedProvider))
}

// InitiateFederatedSignIn navigates the browser to the hosted sign-in page.
func (c *Controller) InitiateFederatedSignIn(nav Navigator) {
	nav.Redirect(c.FederatedSignInURL())
}

// ExchangeAuthorizationCode trades an authorization code for tokens at the
// token endpoint and stores them. The store is left untouched on failure.
func (c *Controller) ExchangeAuthorizationCode(ctx context.Context, code string) (storage.TokenSet, error) {
	form := url.Values{
		"grant_type":   {"authorization_code"},
		"client_id":    {c.oauth.ClientID},
		"code":         {code},
		"redirect_uri": {c.oauth.RedirectURL},
	}

	resp, err := c.postForm(ctx, c.oauth.Endpoint.TokenURL, form)
	if err != nil {
		log.Printf("Error exchanging code for tokens: %v", err)
		return storage.TokenSet{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return storage.TokenSet{}, fmt.Errorf("failed to read token response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		exErr := newTokenExchangeError(resp.StatusCode, body)
		log.Printf("Token exchange failed (status %d): %s", resp.StatusCode, body)
		return storage.TokenSet{}, exErr
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return storage.TokenSet{}, &TokenExchangeError{
			StatusCode: resp.StatusCode,
			Message:    "invalid token response",
			Err:        err,
		}
	}

	tokens := storage.TokenSet{
		IDToken:      payload.IDToken,
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
	}
	if err := c.store.Save(ctx, tokens); err != nil {
		return storage.TokenSet{}, err
	}

	return tokens, nil
}

func newTokenExchangeError(status int, body []byte) *TokenExchangeError {
	exErr := &TokenExchangeError{
		StatusCode: status,
		Message:    defaultExchangeMessage,
	}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		exErr.Err = err
		return exErr
	}

	exErr.Code = payload.Error
	exErr.Description = payload.ErrorDescription
	if payload.Error != "" {
		exErr.Message = payload.Error
	}
	return exErr
}

// revoke invalidates a refresh token at the revocation endpoint.
func (c *Controller) revoke(ctx context.Context, token string) error {
	form := url.Values{
		"token":     {token},
		"client_id": {c.oauth.ClientID},
	}

	resp, err := c.postForm(ctx, c.revokeURL, form)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRevocationFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: status %d", ErrRevocationFailed, resp.StatusCode)
	}
	return nil
}

func (c *Controller) postForm(ctx context.Context, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	if c.clientSecret != "" {
		req.SetBasicAuth(c.oauth.ClientID, c.clientSecret)
	}

	return c.httpClient.Do(req)
}
