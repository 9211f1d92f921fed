package notify

import (
	"context"

	"github.com/MKhiriev/crm-gateway/internal/logger"
)

type logNotifier struct {
	linkBase string
}

// NewLogNotifier returns a notifier that records issued links in the
// security log with the address and token masked. Nothing is delivered.
func NewLogNotifier(linkBase string) ResetNotifier {
	return &logNotifier{linkBase: linkBase}
}

func (n *logNotifier) SendPasswordReset(ctx context.Context, msg ResetMessage) error {
	if _, err := ResetLink(n.linkBase, msg.Token); err != nil {
		return err
	}

	logger.SecurityEvent(ctx, logger.SecurityInfo, "password_reset_link_issued", map[string]any{
		"email":      logger.MaskEmail(msg.Email),
		"token":      logger.MaskToken(msg.Token),
		"expires_at": msg.ExpiresAt,
		"delivered":  false,
	})
	return nil
}
