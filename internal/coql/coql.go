// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package coql builds upstream query statements.
//
// The upstream query endpoint takes a single statement string and offers no
// parameter binding. Statements are therefore assembled with placeholders
// first and the placeholders are then replaced with quoted
// [sanitize.Literal] values. Any argument that is not a literal produced by
// the sanitizer aborts the build.
package coql

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/crm-gateway/internal/sanitize"
)

var (
	// ErrInvalidIdentifier is returned for module or field names that are
	// not plain identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrUnsanitizedValue is returned when a statement argument did not come
	// from the sanitizer.
	ErrUnsanitizedValue = errors.New("statement value was not sanitized")

	// ErrBuildingStatement is returned when the statement skeleton could not be built.
	ErrBuildingStatement = errors.New("error building statement")
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// SelectOne builds a statement selecting fields of at most one record of
// module whose where field equals value.
func SelectOne(module string, fields []string, where string, value sanitize.Literal) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: no fields selected", ErrInvalidIdentifier)
	}
	for _, ident := range append([]string{module, where}, fields...) {
		if !identifierPattern.MatchString(ident) {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, ident)
		}
	}
	if value.IsZero() {
		return "", ErrUnsanitizedValue
	}

	query, args, err := sq.Select(fields...).
		From(module).
		Where(sq.Eq{where: value}).
		Suffix("LIMIT 1").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingStatement, err)
	}

	return bind(query, args)
}

// bind replaces each "?" placeholder with the next argument as a quoted literal.
func bind(query string, args []any) (string, error) {
	var b strings.Builder
	b.Grow(len(query))

	next := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("%w: placeholder without argument", ErrBuildingStatement)
		}
		lit, ok := args[next].(sanitize.Literal)
		if !ok || lit.IsZero() {
			return "", ErrUnsanitizedValue
		}
		b.WriteString(Quote(lit))
		next++
	}
	if next != len(args) {
		return "", fmt.Errorf("%w: %d arguments for %d placeholders", ErrBuildingStatement, len(args), next)
	}

	return b.String(), nil
}

// Quote renders a literal as a single-quoted statement string.
func Quote(lit sanitize.Literal) string {
	return "'" + lit.String() + "'"
}
