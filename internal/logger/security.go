package logger

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// SecurityLevel is the severity of a security event.
type SecurityLevel string

const (
	SecurityInfo    SecurityLevel = "INFO"
	SecurityWarning SecurityLevel = "WARNING"
	SecurityAlert   SecurityLevel = "ALERT"
)

// SecuritySource tags every security event.
const SecuritySource = "crm-gateway"

// SecurityEvent writes a structured security event through the logger in ctx.
//
// fields must only carry masked identifiers, see [MaskEmail] and [MaskToken].
func SecurityEvent(ctx context.Context, level SecurityLevel, event string, fields map[string]any) {
	l := FromContext(ctx)

	var e *zerolog.Event
	switch level {
	case SecurityAlert:
		e = l.Error()
	case SecurityWarning:
		e = l.Warn()
	default:
		e = l.Info()
	}

	e.Bool("security", true).
		Str("source", SecuritySource).
		Str("severity", string(level)).
		Str("event", event).
		Fields(fields).
		Msg("security event")
}

// MaskEmail keeps the first three characters of an address.
func MaskEmail(email string) string {
	return mask(email, 3)
}

// MaskToken keeps the first eight characters of a token.
func MaskToken(token string) string {
	return mask(token, 8)
}

func mask(s string, keep int) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) <= keep {
		return "***"
	}
	return string([]rune(s)[:keep]) + "***"
}
