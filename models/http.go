package models

import "time"

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// SetPasswordRequest is the body of POST /api/users/set-password.
// The employee is identified by the bearer token, not by the body.
type SetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// PasswordResetRequest is the body of POST /api/users/request-password-reset.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,max=254"`
}

// ResetPasswordRequest is the body of POST /api/users/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,min=8,max=128"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// LoginResponse is returned for a verified password.
//
// Exactly one of Token and TempToken is set: TempToken when the employee
// must replace the initial password first.
type LoginResponse struct {
	Success                bool      `json:"success"`
	Message                string    `json:"message,omitempty"`
	Token                  string    `json:"token,omitempty"`
	TempToken              string    `json:"tempToken,omitempty"`
	RequiresPasswordChange bool      `json:"requiresPasswordChange"`
	User                   Principal `json:"user"`
}

// StatusResponse is the generic success/failure envelope.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MeResponse describes the caller of GET /api/users/me.
type MeResponse struct {
	User      Principal  `json:"user"`
	Scope     TokenScope `json:"scope"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
