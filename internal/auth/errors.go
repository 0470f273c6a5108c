package auth

import (
	"errors"

	"github.com/aws/smithy-go"
)

var (
	ErrAuthRejected         = errors.New("authentication rejected")
	ErrRegistrationRejected = errors.New("registration rejected")
	ErrConfirmationRejected = errors.New("confirmation rejected")
	ErrTokenExchangeFailed  = errors.New("token exchange failed")
	ErrRevocationFailed     = errors.New("token revocation failed")
)

const defaultExchangeMessage = "Failed to exchange code for tokens"

// TokenExchangeError is returned when the token endpoint answers with a
// non-success status or an unreadable body.
type TokenExchangeError struct {
	StatusCode  int
	Code        string
	Description string
	Message     string
	Err         error
}

func (e *TokenExchangeError) Error() string {
	return e.Message
}

func (e *TokenExchangeError) Is(target error) bool {
	return target == ErrTokenExchangeFailed
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// ProviderCode returns the identity service's error code, or "" when err
// did not come from the service.
func ProviderCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	var exErr *TokenExchangeError
	if errors.As(err, &exErr) {
		return exErr.Code
	}
	return ""
}

// ProviderMessage returns the identity service's own message for err when
// there is one, and err's text otherwise.
func ProviderMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	var exErr *TokenExchangeError
	if errors.As(err, &exErr) {
		return exErr.Message
	}
	return err.Error()
}
