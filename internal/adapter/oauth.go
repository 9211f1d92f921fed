package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/utils"
	"github.com/MKhiriev/crm-gateway/models"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Error       string `json:"error"`
}

// OAuthRefresher performs the refresh-token grant against the CRM
// accounts server. It implements tokencache.Refresher.
type OAuthRefresher struct {
	client *utils.HTTPClient

	tokenURL     string
	clientID     string
	clientSecret string
	refreshToken string

	now    func() time.Time
	logger *logger.Logger
}

// NewOAuthRefresher builds a refresher from the CRM client settings.
func NewOAuthRefresher(cfg config.CRM, logger *logger.Logger) *OAuthRefresher {
	return &OAuthRefresher{
		client:       utils.NewHTTPClient("", cfg.RequestTimeout),
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		refreshToken: cfg.RefreshToken,
		now:          time.Now,
		logger:       logger,
	}
}

// Refresh exchanges the refresh token for a new access token.
//
// A 200 answer that carries an "error" field, lacks "access_token" or has a
// non-positive "expires_in" is reported as [ErrRefreshRejected]. Transport
// failures and 5xx answers are reported as [ErrUpstreamUnavailable].
func (r *OAuthRefresher) Refresh(ctx context.Context) (models.AccessToken, error) {
	requestedAt := r.now()

	resp, err := r.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"client_id":     r.clientID,
			"client_secret": r.clientSecret,
			"refresh_token": r.refreshToken,
		}).
		Post(r.tokenURL)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("%w: token request: %w", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return models.AccessToken{}, fmt.Errorf("%w: token endpoint answered %d", ErrUpstreamUnavailable, resp.StatusCode())
	}

	var body tokenResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.AccessToken{}, fmt.Errorf("%w: decode token response (status %d)", ErrRefreshRejected, resp.StatusCode())
	}

	switch {
	case body.Error != "":
		r.logger.Warn().Str("oauth_error", body.Error).Int("status", resp.StatusCode()).Msg("token endpoint refused refresh")
		return models.AccessToken{}, fmt.Errorf("%w: %s", ErrRefreshRejected, body.Error)
	case resp.IsError():
		return models.AccessToken{}, fmt.Errorf("%w: token endpoint answered %d", ErrRefreshRejected, resp.StatusCode())
	case body.AccessToken == "":
		return models.AccessToken{}, fmt.Errorf("%w: missing access_token", ErrRefreshRejected)
	case body.ExpiresIn <= 0:
		return models.AccessToken{}, fmt.Errorf("%w: invalid expires_in %d", ErrRefreshRejected, body.ExpiresIn)
	}

	// Expiry counts from the moment the request was sent.
	return models.AccessToken{
		Value:     body.AccessToken,
		ExpiresAt: requestedAt.Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
