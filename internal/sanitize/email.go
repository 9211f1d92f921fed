package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxEmailLength is the longest address [Email] accepts (RFC 5321).
const MaxEmailLength = 254

var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		`[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// suspiciousEmailPatterns are rejected even when the address is well formed.
var suspiciousEmailPatterns = []*regexp.Regexp{
	regexp.MustCompile("['\"\\\\`;]"),
	regexp.MustCompile(`\s`),
	regexp.MustCompile(`@.*@`),
	regexp.MustCompile(`\.\.`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`[<>()]`),
	regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`),
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Email validates an email address and returns its canonical literal:
// lower-cased, trimmed and passed through [Generic].
//
// Sanitizing must not change the identity of the address, so an address
// that [Generic] would alter is rejected rather than silently rewritten.
// For accepted input Email(Email(x).String()) yields the same literal.
func Email(raw string) (Literal, error) {
	if n := utf8.RuneCountInString(raw); n > MaxEmailLength {
		return Literal{}, fmt.Errorf("%w: %d characters, at most %d allowed", ErrTooLong, n, MaxEmailLength)
	}

	if !emailPattern.MatchString(raw) {
		return Literal{}, ErrInvalidFormat
	}
	if err := validate.Var(raw, "email"); err != nil {
		return Literal{}, ErrInvalidFormat
	}

	for _, pattern := range suspiciousEmailPatterns {
		if pattern.MatchString(raw) {
			return Literal{}, ErrSuspiciousPattern
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))

	lit, err := Generic(normalized)
	if err != nil {
		return Literal{}, fmt.Errorf("%w: %w", ErrSuspiciousPattern, err)
	}
	if lit.value != normalized {
		return Literal{}, ErrSuspiciousPattern
	}

	return lit, nil
}
