// Package notify delivers password reset links to employees.
//
// The gateway does not send mail itself. A [ResetNotifier] either hands the
// message to an HTTP mail relay ([NewWebhookNotifier]) or, when no relay is
// configured, only records that a link was issued ([NewLogNotifier]).
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
)

//go:generate mockgen -source=notify.go -destination=../mock/notify_mock.go -package=mock

// ErrDeliveryFailed is returned when the relay did not accept a message.
var ErrDeliveryFailed = errors.New("reset message delivery failed")

// ResetMessage is one password reset link to deliver.
type ResetMessage struct {
	Email     string
	Token     string
	ExpiresAt time.Time
}

// ResetNotifier sends reset links.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, msg ResetMessage) error
}

// New picks the notifier for cfg: the webhook relay when a URL is set,
// otherwise the log-only notifier.
func New(cfg config.Notify, logger *logger.Logger) ResetNotifier {
	if cfg.WebhookURL != "" {
		logger.Info().Msg("reset links are delivered through the webhook relay")
		return NewWebhookNotifier(cfg)
	}
	logger.Warn().Msg("no reset relay configured, reset links are only logged")
	return NewLogNotifier(cfg.ResetLinkBase)
}

// ResetLink appends the token to base as the "token" query parameter.
func ResetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse reset link base: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
