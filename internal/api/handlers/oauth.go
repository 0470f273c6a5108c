package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regrada-ai/regrada-auth/internal/api/middleware"
	"github.com/regrada-ai/regrada-auth/internal/auth"
	"github.com/regrada-ai/regrada-auth/internal/callback"
)

const (
	// FlashCookie carries a one-time alert for the application to display.
	FlashCookie = "auth_flash"
	flashMaxAge = 60
)

const processingPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Signing in</title></head>
<body><p>Processing authentication...</p></body>
</html>
`

type OAuthHandler struct {
	controller    *auth.Controller
	registry      *callback.Registry
	secureCookies bool
}

func NewOAuthHandler(controller *auth.Controller, registry *callback.Registry, secureCookies bool) *OAuthHandler {
	return &OAuthHandler{
		controller:    controller,
		registry:      registry,
		secureCookies: secureCookies,
	}
}

type ginNavigator struct {
	c *gin.Context
}

func (n ginNavigator) Redirect(target string) {
	n.c.Redirect(http.StatusFound, target)
}

// Google starts the federated sign-in flow
// @Summary      Sign in with Google
// @Description  Redirects to the hosted sign-in page with Google preselected.
// @Tags         oauth
// @Success      302
// @Router       /auth/google [get]
func (h *OAuthHandler) Google(c *gin.Context) {
	h.controller.InitiateFederatedSignIn(ginNavigator{c: c})
}

// Callback handles the identity provider's redirect back to the application
// @Summary      OAuth redirect target
// @Tags         oauth
// @Produce      html
// @Param        code               query  string  false  "Authorization code"
// @Param        error              query  string  false  "Provider error code"
// @Param        error_description  query  string  false  "Provider error description"
// @Success      200  {string}  string  "Processing page"
// @Success      302
// @Success      303
// @Router       /callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	result := h.registry.For(sessionID).Handle(c.Request.Context(), c.Request.URL.Query())

	if result.Alert != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(FlashCookie, result.Alert, flashMaxAge, "/", "", h.secureCookies, false)
	}

	switch result.Action {
	case callback.ActionNavigate:
		c.Redirect(http.StatusFound, result.Target)
	case callback.ActionReload:
		// The exchange is done; later redirects in this session start over
		// and find the stored access token.
		h.registry.Forget(sessionID)
		// A fresh GET makes the application reload its authentication state.
		c.Header("Cache-Control", "no-store")
		c.Redirect(http.StatusSeeOther, result.Target)
	default:
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(processingPage))
	}
}
