package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/utils"
)

const resetSubject = "Password reset"

type webhookPayload struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type webhookNotifier struct {
	client   *utils.HTTPClient
	url      string
	linkBase string
}

// NewWebhookNotifier returns a notifier that posts every message as JSON to
// cfg.WebhookURL. Any non-2xx answer is [ErrDeliveryFailed].
func NewWebhookNotifier(cfg config.Notify) ResetNotifier {
	return &webhookNotifier{
		client:   utils.NewHTTPClient("", cfg.Timeout),
		url:      cfg.WebhookURL,
		linkBase: cfg.ResetLinkBase,
	}
}

func (n *webhookNotifier) SendPasswordReset(ctx context.Context, msg ResetMessage) error {
	link, err := ResetLink(n.linkBase, msg.Token)
	if err != nil {
		return err
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(webhookPayload{
			To:        msg.Email,
			Subject:   resetSubject,
			Link:      link,
			ExpiresAt: msg.ExpiresAt,
		}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: relay answered %d", ErrDeliveryFailed, resp.StatusCode())
	}

	logger.SecurityEvent(ctx, logger.SecurityInfo, "password_reset_link_sent", map[string]any{
		"email": logger.MaskEmail(msg.Email),
	})
	return nil
}
