package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/logger"
)

// withTokenRetry runs op again, once, when the upstream rejected the access
// token. The executor has already dropped the token, so the second run
// fetches a fresh one.
func withTokenRetry[T any](ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	v, err := op(ctx)
	if !errors.Is(err, adapter.ErrTokenRejected) {
		return v, err
	}

	logger.FromContext(ctx).Warn().Err(err).Msg("access token rejected, retrying once")
	return op(ctx)
}

func withTokenRetryErr(ctx context.Context, op func(context.Context) error) error {
	_, err := withTokenRetry(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
