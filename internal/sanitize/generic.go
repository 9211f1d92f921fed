package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxGenericLength is the longest raw input [Generic] accepts, in characters.
const MaxGenericLength = 255

// maliciousPatterns is the deny-list applied to raw input before escaping.
// Matching is case-insensitive.
var maliciousPatterns = []*regexp.Regexp{
	// statement keywords
	regexp.MustCompile(`(?i)\b(drop|delete|truncate|alter|create|update|insert|exec|execute|union|select)\b`),
	// comment sequences
	regexp.MustCompile(`--|/\*|\*/|#`),
	// NUL and SUB bytes
	regexp.MustCompile(`[\x00\x1a]`),
	// concatenation operators
	regexp.MustCompile(`\|\||&&|\+\+`),
	// introspection and string functions
	regexp.MustCompile(`(?i)\b(version|database|schema|information_schema|sys|char|ascii|substring|concat)\b`),
	// boolean tautologies such as "or 1=1"
	regexp.MustCompile(`(?i)\b(and|or|not|xor)\s+\d+\s*[=<>!]+\s*\d+`),
	// quote breakout followed by a boolean operator
	regexp.MustCompile(`(?i)'\s*(or|and)\b`),
	// hex and percent encoded escapes
	regexp.MustCompile(`(?i)\\x[0-9a-f]{2}|%[0-9a-f]{2}`),
}

// metaCharacters are removed from escaped output.
const metaCharacters = "\\;`|&$*?~<>^()[]{}"

// Generic validates and escapes a free-form value for use inside a quoted
// statement literal.
//
// Raw input longer than [MaxGenericLength] or matching the deny-list is
// rejected. Otherwise quotes are doubled, control and shell/statement
// metacharacters are removed and whitespace is collapsed. The result is
// re-scanned and rejected if anything dangerous survived.
func Generic(raw string) (Literal, error) {
	if n := utf8.RuneCountInString(raw); n > MaxGenericLength {
		return Literal{}, fmt.Errorf("%w: %d characters, at most %d allowed", ErrTooLong, n, MaxGenericLength)
	}

	if i := matchMalicious(raw); i >= 0 {
		return Literal{}, fmt.Errorf("%w: deny rule %d", ErrMaliciousPattern, i)
	}

	escaped := escape(raw)
	if escaped == "" {
		return Literal{}, ErrEmptyAfterSanitize
	}

	if !isClean(escaped) {
		return Literal{}, ErrResidualCharacters
	}

	return Literal{value: escaped}, nil
}

func matchMalicious(raw string) int {
	for i, pattern := range maliciousPatterns {
		if pattern.MatchString(raw) {
			return i
		}
	}
	return -1
}

func escape(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		switch {
		case r == '\'':
			b.WriteString("''")
		case r == '"':
			b.WriteString(`""`)
		case isControl(r):
		case strings.ContainsRune(metaCharacters, r):
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// isClean reports whether s contains no control or metacharacters and every
// quote is part of a doubled pair.
func isClean(s string) bool {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isControl(r), strings.ContainsRune(metaCharacters, r):
			return false
		case r == '\'' || r == '"':
			if i+1 >= len(runes) || runes[i+1] != r {
				return false
			}
			i++
		}
	}
	return true
}

func isControl(r rune) bool {
	return r <= 0x1f || (r >= 0x7f && r <= 0x9f)
}
