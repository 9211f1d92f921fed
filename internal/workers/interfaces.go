// Package workers runs the gateway's background jobs alongside the HTTP
// server. Workers share the server's lifetime: they start with it and stop
// when its context is cancelled.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/crm-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// TokenWarmer refreshes the upstream access token ahead of its expiry.
// It is implemented by *tokencache.Cache.
type TokenWarmer interface {
	RefreshIfExpiringWithin(ctx context.Context, d time.Duration) (models.AccessToken, error)
}
