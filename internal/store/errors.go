package store

import "errors"

// Sentinel errors returned by [CredentialRepository]. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotFoundOrMismatch conflates an unknown account with a wrong
	// password so that callers cannot tell them apart.
	ErrNotFoundOrMismatch = errors.New("credential not found or mismatch")

	// ErrNotFoundOrExpired conflates an unknown reset token with an expired one.
	ErrNotFoundOrExpired = errors.New("reset token not found or expired")

	// ErrAccountInactive is returned when the record is explicitly marked
	// inactive. It is reported before any password comparison.
	ErrAccountInactive = errors.New("account inactive")
)

// Low-level failures of the credential store.
var (
	// ErrInvalidRecordID is returned for user IDs that are not numeric
	// upstream record identifiers.
	ErrInvalidRecordID = errors.New("invalid record id")

	// ErrUpdateRejected is returned when the upstream answers a record
	// update with a code other than SUCCESS.
	ErrUpdateRejected = errors.New("record update rejected")

	// ErrMalformedResponse is returned when an upstream answer cannot be decoded.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrBuildingStatement is returned when a query statement cannot be built.
	ErrBuildingStatement = errors.New("error building query statement")

	// ErrGeneratingToken is returned when no acceptable reset token could be
	// generated.
	ErrGeneratingToken = errors.New("error generating reset token")

	// ErrHashingPassword is returned when a new password cannot be hashed.
	ErrHashingPassword = errors.New("error hashing password")
)
