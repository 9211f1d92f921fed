package http

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/MKhiriev/crm-gateway/internal/app"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/utils"
)

// rateLimit limits requests per key to limit within window. A non-positive
// limit or window disables the limiter.
func (h *Handler) rateLimit(name string, limit int, window time.Duration, key httprate.KeyFunc) func(http.Handler) http.Handler {
	if limit <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.SecurityEvent(r.Context(), logger.SecurityWarning, "rate_limit_exceeded", map[string]any{
				"limiter": name,
				"path":    r.URL.Path,
			})
			utils.WriteError(w, http.StatusTooManyRequests, app.MsgRateLimited, nil)
		}),
	)
}

// keyByIPAndUserAgent separates clients behind one address by user agent.
func keyByIPAndUserAgent(r *http.Request) (string, error) {
	ip, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}

	ua := r.UserAgent()
	if ua == "" {
		ua = "unknown"
	}
	return ip + "|" + ua, nil
}
