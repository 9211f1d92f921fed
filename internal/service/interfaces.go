// Package service holds the authentication state machine of the gateway.
//
// It orchestrates login, forced password change, password set and the
// password reset request/consume flow on top of the credential store.
// Every failed or not-found branch sleeps for a random delay before
// returning, and security-relevant transitions are written to the security
// log with masked identifiers.
package service

import (
	"context"

	"github.com/MKhiriev/crm-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	// Login verifies a password and issues a session token, or a token
	// scoped to the password change when the initial password is still set.
	Login(ctx context.Context, email, password string) models.AuthOutcome

	// SetPassword replaces the password of email and marks it as custom.
	SetPassword(ctx context.Context, email, newPassword string) (bool, error)

	// RequestPasswordReset issues and delivers a reset token. It returns nil
	// for unknown addresses so callers cannot learn which accounts exist.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConsumeReset sets a new password using a single-use reset token.
	ConsumeReset(ctx context.Context, token, newPassword string) (bool, error)

	// ParseToken validates a gateway-issued token.
	ParseToken(ctx context.Context, raw string) (models.SessionClaims, error)
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.BuildInfo
}
