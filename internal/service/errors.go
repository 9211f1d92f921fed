package service

import "errors"

var (
	// ErrInvalidPassword is returned for new passwords outside the policy.
	ErrInvalidPassword = errors.New("password does not satisfy the policy")

	// ErrTokenIsExpiredOrInvalid is returned by ParseToken for any token that
	// fails validation.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInsufficientScope is returned when a valid token is presented for an
	// action its scope does not cover.
	ErrInsufficientScope = errors.New("token scope does not allow this action")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
