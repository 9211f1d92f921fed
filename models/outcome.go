// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// OutcomeKind classifies the result of a login attempt.
type OutcomeKind int

const (
	// OutcomeError means the attempt could not be decided, see [ErrorKind].
	OutcomeError OutcomeKind = iota
	// OutcomeAuthenticated means the password matched and a session token was issued.
	OutcomeAuthenticated
	// OutcomePasswordChangeRequired means the password matched but the
	// employee still uses the initial password; only a scoped token was issued.
	OutcomePasswordChangeRequired
	// OutcomeInvalidCredentials conflates unknown accounts and wrong passwords.
	OutcomeInvalidCredentials
	// OutcomeAccountInactive means the account exists but is disabled.
	OutcomeAccountInactive
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomePasswordChangeRequired:
		return "password_change_required"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeAccountInactive:
		return "account_inactive"
	default:
		return "error"
	}
}

// ErrorKind refines [OutcomeError].
type ErrorKind string

const (
	ErrorKindNone                ErrorKind = ""
	ErrorKindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	ErrorKindUpstreamRejected    ErrorKind = "upstream_rejected"
	ErrorKindInternal            ErrorKind = "internal"
)

// AuthOutcome is the result of a login attempt.
//
// Principal and Token are set for [OutcomeAuthenticated] and
// [OutcomePasswordChangeRequired] only. For the latter the token carries
// [ScopePasswordChange].
type AuthOutcome struct {
	Kind      OutcomeKind
	Principal Principal
	Token     string
	Error     ErrorKind
}

// Succeeded reports whether the password was verified.
func (o AuthOutcome) Succeeded() bool {
	return o.Kind == OutcomeAuthenticated || o.Kind == OutcomePasswordChangeRequired
}
