// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of inbound request bodies before they
// reach the service layer.
//
// Validation here is structural only (presence and length). Emails and reset
// tokens are additionally checked by the sanitizer inside the credential
// store, which is the boundary that protects upstream statements.
package validators

import "context"

// Validator validates arbitrary request values and optionally restricts
// validation to the named struct fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
