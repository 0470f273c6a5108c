package callback

import (
	"context"
	"errors"
	"log"
	"net/url"

	"github.com/regrada-ai/regrada-auth/internal/storage"
)

const (
	DefaultLoginPath = "/login"
	DefaultHomePath  = "/home"

	retryAlert = "Authentication failed. Please try again."
)

var ErrTokensNotStored = errors.New("tokens were not stored properly")

// Exchanger trades an authorization code for tokens and persists them.
type Exchanger interface {
	ExchangeAuthorizationCode(ctx context.Context, code string) (storage.TokenSet, error)
}

// TokenReader reads the stored authentication state.
type TokenReader interface {
	Read(ctx context.Context, field storage.Field) (string, bool, error)
}

// Result describes what the caller should do after an invocation. Err is
// informational only; the handler has already turned it into Alert.
type Result struct {
	State  State
	Action Action
	Target string
	Alert  string
	Err    error
}

// Handler reacts to the identity provider's redirect back to the
// application. One Handler corresponds to one mounted callback view; its
// latch keeps repeated deliveries of the same redirect from exchanging the
// code twice.
type Handler struct {
	exchanger Exchanger
	tokens    TokenReader
	latch     Latch
	loginPath string
	homePath  string
}

type Option func(*Handler)

// WithPaths overrides the login entry point and the authenticated landing page.
func WithPaths(loginPath, homePath string) Option {
	return func(h *Handler) {
		if loginPath != "" {
			h.loginPath = loginPath
		}
		if homePath != "" {
			h.homePath = homePath
		}
	}
}

func NewHandler(exchanger Exchanger, tokens TokenReader, opts ...Option) *Handler {
	h := &Handler{
		exchanger: exchanger,
		tokens:    tokens,
		loginPath: DefaultLoginPath,
		homePath:  DefaultHomePath,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Processed reports whether the handler has started or completed an exchange.
func (h *Handler) Processed() bool {
	return h.latch.Held()
}

// Handle evaluates one redirect event. It never returns an error; failures
// end in a navigation to the login entry point with an alert.
func (h *Handler) Handle(ctx context.Context, query url.Values) Result {
	if h.latch.Held() {
		return Result{Action: ActionNone}
	}

	params := ParseParams(query)
	authenticated := params.Error == "" && params.Code != "" && h.authenticated(ctx)

	switch state := Classify(params, authenticated); state {
	case StateProviderError:
		log.Printf("OAuth error: %s %s", params.Error, params.ErrorDescription)
		message := params.ErrorDescription
		if message == "" {
			message = params.Error
		}
		return Result{
			State:  state,
			Action: ActionNavigate,
			Target: h.loginPath,
			Alert:  "Authentication failed: " + message,
		}

	case StateMissingCode:
		return Result{State: state, Action: ActionNavigate, Target: h.loginPath}

	case StateAlreadyAuthenticated:
		return Result{State: state, Action: ActionNavigate, Target: h.homePath}
	}

	if !h.latch.Acquire() {
		return Result{Action: ActionNone}
	}

	if err := h.exchange(ctx, params.Code); err != nil {
		h.latch.Release()
		log.Printf("Authentication failed: %v", err)
		return Result{
			State:  StateAuthorizationCode,
			Action: ActionNavigate,
			Target: h.loginPath,
			Alert:  retryAlert,
			Err:    err,
		}
	}

	return Result{
		State:  StateAuthorizationCode,
		Action: ActionReload,
		Target: h.homePath,
	}
}

func (h *Handler) exchange(ctx context.Context, code string) error {
	if _, err := h.exchanger.ExchangeAuthorizationCode(ctx, code); err != nil {
		return err
	}

	// The exchange can report success without leaving a usable token behind.
	accessToken, _, err := h.tokens.Read(ctx, storage.FieldAccessToken)
	if err != nil {
		return err
	}
	if accessToken == "" {
		return ErrTokensNotStored
	}
	return nil
}

func (h *Handler) authenticated(ctx context.Context) bool {
	accessToken, _, err := h.tokens.Read(ctx, storage.FieldAccessToken)
	if err != nil {
		log.Printf("Callback: failed to read access token: %v", err)
		return false
	}
	return accessToken != ""
}
