package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is the upstream OAuth access token held by the token cache.
//
// Value is a bearer credential and must never be logged.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// IsZero reports whether the token is empty.
func (t AccessToken) IsZero() bool {
	return t.Value == ""
}

// UsableAt reports whether the token is still valid at now with at least
// margin left before expiry.
func (t AccessToken) UsableAt(now time.Time, margin time.Duration) bool {
	return !t.IsZero() && now.Add(margin).Before(t.ExpiresAt)
}

// TokenScope limits what a gateway-issued session token may be used for.
type TokenScope string

const (
	// ScopeSession grants normal authenticated access.
	ScopeSession TokenScope = "session"
	// ScopePasswordChange only allows setting a new password.
	ScopePasswordChange TokenScope = "password_change"
)

// Valid reports whether s is a known scope.
func (s TokenScope) Valid() bool {
	return s == ScopeSession || s == ScopePasswordChange
}

// SessionClaims is the claim set of gateway-issued tokens.
//
// The subject ("sub") carries the upstream record ID of the employee.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Email is the login the token was issued to.
	Email string `json:"email"`

	// Scope restricts the token's use, see [TokenScope].
	Scope TokenScope `json:"scope"`
}

// Principal returns the identity the claims were issued to.
func (c SessionClaims) Principal() Principal {
	return Principal{ID: c.Subject, Email: c.Email}
}

// Token wraps a signed gateway token.
//
// It embeds [jwt.Token] for low-level token operations and keeps the claims
// the token was signed with.
type Token struct {
	// Token is the underlying JWT used for signing.
	*jwt.Token `json:"-"`

	// Claims is the claim set embedded in the token.
	Claims SessionClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
