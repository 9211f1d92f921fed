package models

import "time"

// Credential is one employee record of the upstream credential module as
// seen by the gateway.
//
// The record is owned by the CRM; the gateway only reads it and writes the
// password and reset-token fields back.
type Credential struct {
	// ID is the opaque upstream record identifier (a numeric string).
	ID string `json:"id"`

	// Email is the employee login, stored lower-cased upstream.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the employee password.
	// It never leaves the credential store; see [Credential.Redacted].
	PasswordHash string `json:"-"`

	// CustomPasswordSet reports whether the employee has replaced the
	// initial password. False forces a password change after login.
	CustomPasswordSet bool `json:"customPasswordSet"`

	// Active is the employment status flag. A nil value means the field is
	// not set upstream and the account is treated as active.
	Active *bool `json:"active,omitempty"`

	// ResetToken is the pending password reset token, if any.
	ResetToken string `json:"-"`

	// ResetTokenExpiry is the instant after which ResetToken is void.
	ResetTokenExpiry *time.Time `json:"-"`
}

// IsInactive reports whether the record is explicitly marked inactive.
func (c Credential) IsInactive() bool {
	return c.Active != nil && !*c.Active
}

// Redacted returns a copy of the record without secret material.
func (c Credential) Redacted() Credential {
	c.PasswordHash = ""
	c.ResetToken = ""
	c.ResetTokenExpiry = nil
	return c
}

// Principal returns the public identity of the record.
func (c Credential) Principal() Principal {
	return Principal{ID: c.ID, Email: c.Email}
}

// Principal is the identity returned to clients after authentication.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ResetToken is a freshly issued single-use password reset token.
type ResetToken struct {
	// UserID is the record the token was issued for.
	UserID string
	// Email is the address the reset link is sent to.
	Email string
	// Value is the URL-safe token itself.
	Value string
	// ExpiresAt is when the token stops being accepted.
	ExpiresAt time.Time
}
