package tokencache

//go:generate mockgen -source=interfaces.go -destination=../mock/refresher_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/crm-gateway/models"
)

// Refresher obtains a fresh upstream access token.
type Refresher interface {
	Refresh(ctx context.Context) (models.AccessToken, error)
}
