package sanitize

import (
	"fmt"
	"regexp"
)

// Token length bounds accepted by [Token].
const (
	MinTokenLength = 8
	MaxTokenLength = 128
)

// minUniqueRatio is the lowest share of distinct characters a token may have.
const minUniqueRatio = 0.3

// maxRepeatRun is the longest run of one repeated character a token may contain.
const maxRepeatRun = 4

var tokenCharset = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var suspiciousTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[-]+$|^[_]+$`),
	regexp.MustCompile(`--+|__+`),
	regexp.MustCompile(`(?i)^(admin|root|test|debug|null|undefined)$`),
	regexp.MustCompile(`(?i)012|123|abc|qwe|password`),
}

// Token validates an opaque reset token.
//
// Tokens are accepted verbatim or not at all: the charset is URL-safe and
// [Generic] must leave the value unchanged.
func Token(raw string) (Literal, error) {
	if n := len(raw); n < MinTokenLength || n > MaxTokenLength {
		return Literal{}, fmt.Errorf("%w: %d characters, expected %d-%d", ErrInvalidLength, n, MinTokenLength, MaxTokenLength)
	}

	if !tokenCharset.MatchString(raw) {
		return Literal{}, ErrInvalidCharset
	}

	for _, pattern := range suspiciousTokenPatterns {
		if pattern.MatchString(raw) {
			return Literal{}, ErrSuspiciousPattern
		}
	}
	if longestRun(raw) > maxRepeatRun {
		return Literal{}, ErrSuspiciousPattern
	}

	if uniqueRatio(raw) < minUniqueRatio {
		return Literal{}, ErrLowEntropy
	}

	lit, err := Generic(raw)
	if err != nil {
		return Literal{}, fmt.Errorf("%w: %w", ErrSuspiciousPattern, err)
	}
	if lit.value != raw {
		return Literal{}, ErrSuspiciousPattern
	}

	return lit, nil
}

// longestRun returns the length of the longest run of one repeated byte.
func longestRun(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

func uniqueRatio(s string) float64 {
	if s == "" {
		return 0
	}
	seen := make(map[byte]struct{}, len(s))
	for i := 0; i < len(s); i++ {
		seen[s[i]] = struct{}{}
	}
	return float64(len(seen)) / float64(len(s))
}
