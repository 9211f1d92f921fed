package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/crm-gateway/internal/logger"
)

// TokenKeeper keeps the upstream access token warm so request paths rarely
// pay for a refresh. On every tick it renews a token that would otherwise
// enter the cache's safety margin before the next tick.
type TokenKeeper struct {
	tokens   TokenWarmer
	interval time.Duration
	logger   *logger.Logger
}

// NewTokenKeeper returns nil when interval is not positive; NewWorkers drops
// nil workers.
func NewTokenKeeper(tokens TokenWarmer, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		return nil
	}
	return &TokenKeeper{tokens: tokens, interval: interval, logger: logger}
}

func (k *TokenKeeper) Run(ctx context.Context) {
	k.logger.Info().Dur("interval", k.interval).Msg("token keeper started")

	k.warm(ctx)

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			k.logger.Info().Msg("token keeper stopped")
			return
		case <-ticker.C:
			k.warm(ctx)
		}
	}
}

func (k *TokenKeeper) warm(ctx context.Context) {
	token, err := k.tokens.RefreshIfExpiringWithin(ctx, k.lookahead())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		k.logger.Warn().Err(err).Msg("token warmup failed")
		return
	}
	k.logger.Debug().Time("expires_at", token.ExpiresAt).Msg("upstream token is warm")
}

// lookahead covers one interval plus slack for a tick that fires late.
func (k *TokenKeeper) lookahead() time.Duration {
	return k.interval + k.interval/4
}
