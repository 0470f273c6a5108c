package callback

import "net/url"

// State is the terminal condition an inbound redirect is classified into.
type State int

const (
	// StateNone marks an invocation that was not evaluated because an
	// exchange is already in flight or has succeeded.
	StateNone State = iota
	StateAuthorizationCode
	StateProviderError
	StateMissingCode
	StateAlreadyAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthorizationCode:
		return "authorizationCode"
	case StateProviderError:
		return "providerError"
	case StateMissingCode:
		return "missingCode"
	case StateAlreadyAuthenticated:
		return "alreadyAuthenticated"
	default:
		return "none"
	}
}

// Action tells the caller how to move the browser on.
type Action int

const (
	// ActionNone leaves the browser where it is.
	ActionNone Action = iota
	// ActionNavigate replaces the current location.
	ActionNavigate
	// ActionReload performs a full page load so the application re-reads
	// its authentication state from storage.
	ActionReload
)

func (a Action) String() string {
	switch a {
	case ActionNavigate:
		return "navigate"
	case ActionReload:
		return "reload"
	default:
		return "none"
	}
}

// Params are the query parameters the identity provider redirects with.
type Params struct {
	Code             string
	Error            string
	ErrorDescription string
}

func ParseParams(query url.Values) Params {
	return Params{
		Code:             query.Get("code"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}
}

// Classify maps the redirect parameters and the current authentication
// state onto exactly one State. A provider error wins over a code.
func Classify(params Params, authenticated bool) State {
	switch {
	case params.Error != "":
		return StateProviderError
	case params.Code == "":
		return StateMissingCode
	case authenticated:
		return StateAlreadyAuthenticated
	default:
		return StateAuthorizationCode
	}
}
