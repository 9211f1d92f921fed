// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sanitize turns untrusted login and reset input into values that are
// safe to splice into upstream query statements.
//
// The upstream query language has no parameter binding, so every value that
// ends up inside a statement must pass through one of [Email], [Token] or
// [Generic]. They return a [Literal], the only type the statement builder
// accepts. A Literal cannot be constructed outside this package.
//
// All checks fail closed: anything that matches a deny pattern, or that would
// still contain a dangerous character after escaping, is rejected instead of
// being repaired.
package sanitize

// Literal is a sanitized value ready to be quoted into a statement.
//
// The zero value is not a valid literal; see [Literal.IsZero].
type Literal struct {
	value string
}

// String returns the sanitized text without surrounding quotes.
func (l Literal) String() string {
	return l.value
}

// IsZero reports whether l was not produced by a sanitizer.
func (l Literal) IsZero() bool {
	return l.value == ""
}
