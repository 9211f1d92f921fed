// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for type-safe context keys, HTTP response writing,
// HTTP client initialization, and session token generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/crm-gateway/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key under which the bearer middleware stores the
// verified [models.SessionClaims] of the caller.
var ClaimsCtxKey = contextKey("sessionClaims")

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims models.SessionClaims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// GetClaimsFromContext retrieves the session claims stored by [WithClaims].
//
// ok is false when the value is missing or has an unexpected type.
func GetClaimsFromContext(ctx context.Context) (models.SessionClaims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.SessionClaims)
	return claims, ok
}
