package sanitize

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every sanitizer rejection.
// Callers match it with [errors.Is] and must not echo the rejected input.
var ErrValidation = errors.New("input validation failed")

// Rejection kinds. Each wraps [ErrValidation].
var (
	ErrTooLong            = fmt.Errorf("%w: input too long", ErrValidation)
	ErrInvalidFormat      = fmt.Errorf("%w: invalid format", ErrValidation)
	ErrSuspiciousPattern  = fmt.Errorf("%w: suspicious pattern", ErrValidation)
	ErrInvalidLength      = fmt.Errorf("%w: invalid length", ErrValidation)
	ErrInvalidCharset     = fmt.Errorf("%w: invalid character set", ErrValidation)
	ErrLowEntropy         = fmt.Errorf("%w: insufficient entropy", ErrValidation)
	ErrMaliciousPattern   = fmt.Errorf("%w: malicious pattern", ErrValidation)
	ErrEmptyAfterSanitize = fmt.Errorf("%w: empty after sanitization", ErrValidation)
	ErrResidualCharacters = fmt.Errorf("%w: dangerous characters remain after sanitization", ErrValidation)
)
