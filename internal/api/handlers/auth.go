package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regrada-ai/regrada-auth/internal/api/middleware"
	"github.com/regrada-ai/regrada-auth/internal/api/types"
	"github.com/regrada-ai/regrada-auth/internal/auth"
	"github.com/regrada-ai/regrada-auth/internal/callback"
)

type AuthHandler struct {
	controller *auth.Controller
	registry   *callback.Registry
}

func NewAuthHandler(controller *auth.Controller, registry *callback.Registry) *AuthHandler {
	return &AuthHandler{
		controller: controller,
		registry:   registry,
	}
}

// SignUp handles user registration
// @Summary      Register a new account
// @Description  Registers the email as username with the identity provider. A confirmation code is sent to the email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      types.SignUpRequest  true  "Credentials"
// @Success      201      {object}  types.SignUpResponse
// @Failure      400      {object}  types.ErrorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req types.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.controller.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("SignUp error: %v", err)
		if errors.Is(err, auth.ErrRegistrationRejected) {
			respondError(c, http.StatusBadRequest, "SIGNUP_FAILED", auth.ProviderMessage(err))
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign up")
		return
	}

	c.JSON(http.StatusCreated, types.SignUpResponse{
		Success:                 true,
		UserSub:                 result.UserSub,
		UserConfirmed:           result.UserConfirmed,
		CodeDeliveryDestination: result.CodeDeliveryDestination,
		CodeDeliveryMedium:      result.CodeDeliveryMedium,
		Message:                 "Sign up successful. Please check your email for verification code.",
	})
}

// ConfirmSignUp handles email verification
// @Summary      Confirm a registration
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      types.ConfirmSignUpRequest  true  "Confirmation code"
// @Success      200      {object}  types.MessageResponse
// @Failure      400      {object}  types.ErrorResponse
// @Router       /v1/auth/confirm [post]
func (h *AuthHandler) ConfirmSignUp(c *gin.Context) {
	var req types.ConfirmSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.controller.ConfirmSignUp(c.Request.Context(), req.Email, req.Code); err != nil {
		log.Printf("ConfirmSignUp error: %v", err)
		respondError(c, http.StatusBadRequest, "VERIFICATION_FAILED", auth.ProviderMessage(err))
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{
		Success: true,
		Message: "Email verified successfully. You can now sign in.",
	})
}

// SignIn handles user login
// @Summary      Sign in with email and password
// @Description  On success the session holds the issued tokens. Tokens are never returned to the browser.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      types.SignInRequest  true  "Credentials"
// @Success      200      {object}  types.MessageResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      401      {object}  types.ErrorResponse
// @Failure      429      {object}  types.ErrorResponse
// @Router       /v1/auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req types.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	controller := h.controller.WithStore(middleware.TokenStore(c))
	if _, err := controller.SignIn(c.Request.Context(), req.Email, req.Password); err != nil {
		log.Printf("SignIn error: %v", err)
		if errors.Is(err, auth.ErrAuthRejected) {
			respondError(c, http.StatusUnauthorized, "SIGNIN_FAILED", auth.ProviderMessage(err))
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store session")
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{
		Success: true,
		Message: "Sign in successful",
	})
}

// SignOut handles user logout
// @Summary      Sign out
// @Description  Revokes the refresh token (best effort) and clears the session. Always succeeds.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  types.MessageResponse
// @Router       /v1/auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.controller.WithStore(middleware.TokenStore(c)).SignOut(c.Request.Context())
	h.registry.Forget(middleware.SessionID(c))

	c.JSON(http.StatusOK, types.MessageResponse{
		Success: true,
		Message: "Signed out successfully",
	})
}

// Session reports whether the current session is authenticated
// @Summary      Session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  types.SessionResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /v1/auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	authenticated, err := middleware.TokenStore(c).HasAccessToken(c.Request.Context())
	if err != nil {
		log.Printf("Session lookup error: %v", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read session")
		return
	}

	c.JSON(http.StatusOK, types.SessionResponse{Authenticated: authenticated})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, types.ErrorResponse{
		Error: types.Error{
			Code:    code,
			Message: message,
		},
	})
}
