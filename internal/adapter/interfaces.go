// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the upstream CRM.
//
// [OAuthRefresher] exchanges the long-lived refresh token for short-lived
// access tokens. [Executor] issues authenticated CRM calls using the token
// held by a [TokenSource] and normalizes every upstream failure into the
// error taxonomy defined in errors.go, so callers can use [errors.Is] and
// [errors.As] without knowing the upstream wire format.
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/crm-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Executor issues one authenticated upstream request.
type Executor interface {
	// Request sends payload (JSON encoded, may be nil) to path relative to the
	// CRM base URL and returns the raw JSON response. An empty upstream body
	// (HTTP 204) is returned as an empty JSON object.
	//
	// When the upstream rejects the access token the token source is
	// invalidated and the returned error matches [ErrTokenRejected]. The
	// executor never retries on its own.
	Request(ctx context.Context, method, path string, payload any) (json.RawMessage, error)
}

// TokenSource hands out the current upstream access token.
// It is implemented by *tokencache.Cache.
type TokenSource interface {
	Get(ctx context.Context) (models.AccessToken, error)
	Invalidate(rejected string)
}
