package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client rooted at baseURL with the given
// per-request timeout. A trailing slash on baseURL is dropped so that
// request paths can always start with "/".
//
// Each call returns an independent client with its own connection pool.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://www.zohoapis.com/crm/v2", 15*time.Second)
//	resp, err := client.R().SetContext(ctx).Post("/coql")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json")

	if baseURL != "" {
		client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
