package types

// Error represents an API error response
type Error struct {
	Code    string `json:"code" example:"INVALID_REQUEST"`
	Message string `json:"message" example:"Invalid request parameters"`
}

// ErrorResponse wraps an error
type ErrorResponse struct {
	Error Error `json:"error"`
}

// SignUpRequest represents a user signup request
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// SignUpResponse represents the signup response
type SignUpResponse struct {
	Success                 bool   `json:"success" example:"true"`
	UserSub                 string `json:"user_sub" example:"123e4567-e89b-12d3-a456-426614174000"`
	UserConfirmed           bool   `json:"user_confirmed" example:"false"`
	CodeDeliveryDestination string `json:"code_delivery_destination,omitempty" example:"u***@example.com"`
	CodeDeliveryMedium      string `json:"code_delivery_medium,omitempty" example:"EMAIL"`
	Message                 string `json:"message" example:"Sign up successful. Please check your email for verification code."`
}

// ConfirmSignUpRequest represents an email verification request
type ConfirmSignUpRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
	Code  string `json:"code" binding:"required" example:"123456"`
}

// SignInRequest represents a signin request
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// MessageResponse is returned by endpoints that only report success
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Sign in successful"`
}

// SessionResponse reports whether the session holds an access token
type SessionResponse struct {
	Authenticated bool `json:"authenticated" example:"true"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
}
