package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUpstreamUnavailable covers transport failures, timeouts, 5xx answers
	// and an open circuit breaker.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamRejected matches every [*UpstreamRejectedError].
	ErrUpstreamRejected = errors.New("upstream rejected request")

	// ErrTokenRejected marks a rejection of the access token. The token has
	// already been invalidated; repeating the whole operation once is safe.
	ErrTokenRejected = errors.New("upstream rejected access token")

	// ErrRefreshRejected is returned when the OAuth endpoint refuses to issue
	// an access token or answers with an unusable payload.
	ErrRefreshRejected = errors.New("access token refresh rejected")

	// ErrInvalidResponse is returned when a 2xx answer is not valid JSON.
	ErrInvalidResponse = errors.New("invalid upstream response")
)

// authErrorCodes are the upstream codes that mean the access token is no
// longer accepted.
var authErrorCodes = map[string]struct{}{
	"INVALID_TOKEN":          {},
	"OAUTH_SCOPE_MISMATCH":   {},
	"AUTHENTICATION_FAILURE": {},
}

// UpstreamRejectedError is a structured error answer of the CRM.
type UpstreamRejectedError struct {
	Status  int
	Code    string
	Message string
}

func (e *UpstreamRejectedError) Error() string {
	code := e.Code
	if code == "" {
		code = "N/A"
	}
	return fmt.Sprintf("upstream error %d (%s): %s", e.Status, code, e.Message)
}

// Is makes errors.Is(err, ErrUpstreamRejected) hold for every rejection.
func (e *UpstreamRejectedError) Is(target error) bool {
	return target == ErrUpstreamRejected
}

// AuthRelated reports whether the rejection concerns the access token.
func (e *UpstreamRejectedError) AuthRelated() bool {
	if e.Status == http.StatusUnauthorized {
		return true
	}
	_, ok := authErrorCodes[e.Code]
	return ok
}
