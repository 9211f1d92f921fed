// Package store is the credential store of the gateway.
//
// Credentials live in a module of the upstream CRM. The store reads them with
// single-row query statements built from sanitized literals and writes the
// password and reset-token fields back through record updates. Password
// hashes never leave this package.
package store

import (
	"context"

	"github.com/MKhiriev/crm-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CredentialRepository reads and updates employee credentials.
//
// Every email and token argument is passed through the sanitizer first; a
// rejected value is reported as an error wrapping sanitize.ErrValidation and
// never reaches the upstream.
type CredentialRepository interface {
	// FindByEmail returns the redacted record for email or
	// [ErrNotFoundOrMismatch].
	FindByEmail(ctx context.Context, email string) (models.Credential, error)

	// VerifyCredential returns the redacted record when password matches.
	// Unknown accounts and wrong passwords both yield
	// [ErrNotFoundOrMismatch] after one hash comparison. Inactive accounts
	// yield [ErrAccountInactive] without a comparison.
	VerifyCredential(ctx context.Context, email, password string) (models.Credential, error)

	// SetCredential stores a new password for email and marks it as a
	// custom password.
	SetCredential(ctx context.Context, email, newPassword string) error

	// SetCredentialByID is SetCredential for a known record ID.
	SetCredentialByID(ctx context.Context, userID, newPassword string) error

	// IssueResetToken generates, persists and returns a fresh reset token
	// valid for one hour.
	IssueResetToken(ctx context.Context, userID string) (models.ResetToken, error)

	// ConsumeResetToken returns the redacted record owning token, or
	// [ErrNotFoundOrExpired] for unknown and expired tokens alike. It does
	// not clear the token; see ClearResetToken.
	ConsumeResetToken(ctx context.Context, token string) (models.Credential, error)

	// ClearResetToken removes any pending reset token of the record.
	ClearResetToken(ctx context.Context, userID string) error
}
