// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tokencache keeps the process-wide upstream access token.
//
// A [Cache] hands out the current token while it is valid with a safety
// margin to spare and refreshes it through a [Refresher] otherwise.
// Concurrent callers that find the cache empty share a single refresh.
package tokencache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/metrics"
	"github.com/MKhiriev/crm-gateway/models"
)

// MinSafetyMargin is the smallest margin a cache accepts.
const MinSafetyMargin = 60 * time.Second

const refreshKey = "access_token"

// ErrTokenTooShortLived is returned when a refreshed token would already be
// inside the safety margin.
var ErrTokenTooShortLived = errors.New("refreshed token expires within safety margin")

// State describes the cache for diagnostics.
type State int

const (
	StateEmpty State = iota
	StateRefreshing
	StateValid
)

func (s State) String() string {
	switch s {
	case StateRefreshing:
		return "refreshing"
	case StateValid:
		return "valid"
	default:
		return "empty"
	}
}

// Cache holds the current access token. The zero value is not usable; use [New].
type Cache struct {
	refresher      Refresher
	margin         time.Duration
	refreshTimeout time.Duration
	now            func() time.Time
	metrics        *metrics.Metrics
	logger         *logger.Logger

	group singleflight.Group

	mu         sync.RWMutex
	token      models.AccessToken
	refreshing bool
}

// Option configures a [Cache].
type Option func(*Cache)

// WithSafetyMargin sets the margin before expiry after which a token is no
// longer handed out. Values below [MinSafetyMargin] are raised to it.
func WithSafetyMargin(margin time.Duration) Option {
	return func(c *Cache) {
		c.margin = max(margin, MinSafetyMargin)
	}
}

// WithRefreshTimeout bounds a single refresh.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(c *Cache) {
		c.refreshTimeout = timeout
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithMetrics records refresh results.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithLogger sets the logger used for refresh diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// New creates an empty cache backed by refresher.
func New(refresher Refresher, opts ...Option) *Cache {
	c := &Cache{
		refresher:      refresher,
		margin:         MinSafetyMargin,
		refreshTimeout: 30 * time.Second,
		now:            time.Now,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a token valid for at least the safety margin, refreshing it
// first when needed. Only one refresh runs at a time; concurrent callers
// wait for its result.
//
// A refresh is not tied to the cancellation of the caller that started it.
// A caller whose ctx ends while waiting gets ctx.Err().
func (c *Cache) Get(ctx context.Context) (models.AccessToken, error) {
	if token, ok := c.usableFor(c.margin); ok {
		return token, nil
	}
	return c.await(ctx, 0)
}

// RefreshIfExpiringWithin refreshes the token when it would enter the
// safety margin within d, and returns the cached one otherwise. It shares
// the single in-flight refresh with [Cache.Get].
//
// If an early refresh fails while the cached token is still usable, the
// token is kept and the error is returned.
func (c *Cache) RefreshIfExpiringWithin(ctx context.Context, d time.Duration) (models.AccessToken, error) {
	d = max(d, 0)
	if token, ok := c.usableFor(c.margin + d); ok {
		return token, nil
	}
	return c.await(ctx, d)
}

func (c *Cache) await(ctx context.Context, ahead time.Duration) (models.AccessToken, error) {
	resultChan := c.group.DoChan(refreshKey, func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx), ahead)
	})

	select {
	case <-ctx.Done():
		return models.AccessToken{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return models.AccessToken{}, res.Err
		}
		return res.Val.(models.AccessToken), nil
	}
}

// Invalidate drops the cached token if it is still rejected. A token that
// was already replaced by a newer one is kept. An empty rejected value
// drops whatever is cached.
func (c *Cache) Invalidate(rejected string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rejected == "" || c.token.Value == rejected {
		c.token = models.AccessToken{}
	}
}

// State reports the current cache state.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.refreshing:
		return StateRefreshing
	case c.token.UsableAt(c.now(), c.margin):
		return StateValid
	default:
		return StateEmpty
	}
}

// ExpiresAt returns the expiry of the cached token, zero when empty.
func (c *Cache) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token.ExpiresAt
}

// usableFor returns the cached token if it has more than left before expiry.
func (c *Cache) usableFor(left time.Duration) (models.AccessToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token.UsableAt(c.now(), left) {
		return c.token, true
	}
	return models.AccessToken{}, false
}

func (c *Cache) refresh(ctx context.Context, ahead time.Duration) (models.AccessToken, error) {
	// a flight that finished just before this one was started may have
	// already stored a usable token
	if token, ok := c.usableFor(c.margin + ahead); ok {
		return token, nil
	}

	c.mu.Lock()
	c.refreshing = true
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.refreshTimeout)
	defer cancel()

	token, err := c.refresher.Refresh(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing = false

	if err != nil {
		if !c.token.UsableAt(c.now(), c.margin) {
			c.token = models.AccessToken{}
		}
		c.metrics.TokenRefresh("failure")
		c.logger.Err(err).Str("func", "tokencache.refresh").Msg("access token refresh failed")
		return models.AccessToken{}, fmt.Errorf("refreshing access token: %w", err)
	}

	if !token.UsableAt(c.now(), c.margin) {
		if !c.token.UsableAt(c.now(), c.margin) {
			c.token = models.AccessToken{}
		}
		c.metrics.TokenRefresh("failure")
		c.logger.Warn().
			Str("func", "tokencache.refresh").
			Time("expires_at", token.ExpiresAt).
			Dur("margin", c.margin).
			Msg("refreshed access token is too short-lived")
		return models.AccessToken{}, ErrTokenTooShortLived
	}

	c.token = token
	c.metrics.TokenRefresh("success")
	c.logger.Info().
		Str("func", "tokencache.refresh").
		Time("expires_at", token.ExpiresAt).
		Msg("access token refreshed")

	return token, nil
}
