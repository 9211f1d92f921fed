// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages shared by the crm-gateway
// handlers and middleware.
//
// Messages are written into HTTP response bodies, so none of them may reveal
// whether an account exists or why an upstream call failed.
package app

const (
	// MsgInvalidDataProvided is returned when the request body is not valid JSON.
	MsgInvalidDataProvided = "invalid JSON was passed"

	// MsgValidationFailed is returned together with per-field details when a
	// decoded request fails struct validation.
	MsgValidationFailed = "validation failed"

	// MsgInvalidInput is returned when the sanitizer rejects an email or token.
	MsgInvalidInput = "invalid input"

	// MsgInvalidCredentials covers both an unknown email and a wrong password.
	MsgInvalidCredentials = "invalid email or password"

	MsgAccountInactive = "account is inactive"

	// MsgPasswordChange accompanies a token that only allows setting a password.
	MsgPasswordChange = "password change required"

	MsgPasswordUpdated = "password updated"

	// MsgPasswordPolicy is returned when a new password is outside 8..72 bytes.
	MsgPasswordPolicy = "password must be between 8 and 72 bytes"

	// MsgResetRequested is returned for every reset request, whether or not
	// the address is registered.
	MsgResetRequested = "if the address is registered, a reset link has been sent"

	// MsgInvalidResetToken covers unknown, expired and already used reset tokens.
	MsgInvalidResetToken = "invalid or expired token"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired or
	// cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgInsufficientScope is returned when a valid bearer token does not
	// allow the requested action.
	MsgInsufficientScope = "token does not allow this action"

	MsgServiceUnavailable = "service temporarily unavailable"

	// MsgUpstreamFailed hides the reason the CRM refused a request.
	MsgUpstreamFailed = "upstream request failed"

	MsgRateLimited = "too many requests, try again later"
)
