package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/regrada-ai/regrada-auth/internal/storage"
)

const (
	SessionCookie = "regrada_session"

	sessionIDKey  = "session_id"
	tokenStoreKey = "token_store"
)

// SessionMiddleware binds every request to a browser session and the
// session's token store.
type SessionMiddleware struct {
	backend       storage.Backend
	ttl           time.Duration
	secureCookies bool
}

func NewSessionMiddleware(backend storage.Backend, ttl time.Duration, secureCookies bool) *SessionMiddleware {
	return &SessionMiddleware{
		backend:       backend,
		ttl:           ttl,
		secureCookies: secureCookies,
	}
}

func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
		}

		// Refresh the cookie on every request so an active session does not expire.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, int(m.ttl.Seconds()), "/", "", m.secureCookies, true)

		c.Set(sessionIDKey, sessionID)
		c.Set(tokenStoreKey, storage.NewTokenStore(m.backend, sessionID))
		c.Next()
	}
}

// SessionID returns the session bound by Attach.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// TokenStore returns the session's token store bound by Attach.
func TokenStore(c *gin.Context) *storage.TokenStore {
	store, _ := c.Get(tokenStoreKey)
	ts, _ := store.(*storage.TokenStore)
	return ts
}
