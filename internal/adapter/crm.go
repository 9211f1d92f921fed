package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"

	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/metrics"
	"github.com/MKhiriev/crm-gateway/internal/utils"
)

const (
	breakerName         = "crm"
	breakerMaxRequests  = 1
	breakerInterval     = 60 * time.Second
	breakerMinRequests  = 5
	breakerFailureRatio = 0.5
)

// request outcome labels
const (
	outcomeSuccess       = "success"
	outcomeRejected      = "rejected"
	outcomeTokenRejected = "token_rejected"
	outcomeUnavailable   = "unavailable"
)

var (
	errServerStatus = errors.New("upstream server error")
	emptyObject     = json.RawMessage(`{}`)
)

type crmExecutor struct {
	client  *utils.HTTPClient
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker[*resty.Response]

	metrics *metrics.Metrics
}

// NewCRMExecutor creates the upstream [Executor] for the CRM REST API at
// cfg.APIURL. Calls pass through a circuit breaker that opens after half of
// at least five calls within a minute failed on transport or with a 5xx
// answer, and probes again after cfg.BreakerTimeout.
func NewCRMExecutor(cfg config.CRM, tokens TokenSource, m *metrics.Metrics, log *logger.Logger) Executor {
	e := &crmExecutor{
		client:  utils.NewHTTPClient(cfg.APIURL, cfg.RequestTimeout),
		tokens:  tokens,
		metrics: m,
	}

	e.breaker = gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= breakerFailureRatio
		},
		// A caller giving up says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			m.BreakerState(name, to)
		},
	})
	m.BreakerState(breakerName, gobreaker.StateClosed)

	return e
}

func (e *crmExecutor) Request(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	token, err := e.tokens.Get(ctx)
	if err != nil {
		e.metrics.UpstreamRequest(method, outcomeUnavailable)
		if errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrRefreshRejected) {
			return nil, fmt.Errorf("access token: %w", err)
		}
		return nil, fmt.Errorf("%w: access token: %w", ErrUpstreamUnavailable, err)
	}

	resp, err := e.breaker.Execute(func() (*resty.Response, error) {
		req := e.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Zoho-oauthtoken "+token.Value)
		if payload != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(payload)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if err != nil {
		e.metrics.UpstreamRequest(method, outcomeUnavailable)
		return nil, e.unavailable(ctx, method, path, resp, err)
	}

	if resp.IsError() {
		return nil, e.rejected(ctx, method, path, token.Value, mapUpstreamError(resp.StatusCode(), resp.Body()))
	}

	e.metrics.UpstreamRequest(method, outcomeSuccess)

	body := resp.Body()
	if resp.StatusCode() == http.StatusNoContent || len(body) == 0 {
		return emptyObject, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidResponse, method, path)
	}

	return json.RawMessage(body), nil
}

func (e *crmExecutor) unavailable(ctx context.Context, method, path string, resp *resty.Response, err error) error {
	log := logger.FromContext(ctx)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		log.Warn().Str("method", method).Str("path", path).Msg("upstream call short-circuited")
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	case errors.Is(err, errServerStatus) && resp != nil:
		rejected := mapUpstreamError(resp.StatusCode(), resp.Body())
		log.Error().Str("method", method).Str("path", path).
			Int("status", rejected.Status).Str("code", rejected.Code).
			Msg("upstream server error")
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, rejected)
	default:
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("upstream transport failure")
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
}

func (e *crmExecutor) rejected(ctx context.Context, method, path, token string, rejected *UpstreamRejectedError) error {
	log := logger.FromContext(ctx)

	if rejected.AuthRelated() {
		e.tokens.Invalidate(token)
		e.metrics.UpstreamRequest(method, outcomeTokenRejected)
		logger.SecurityEvent(ctx, logger.SecurityWarning, "upstream_token_rejected", map[string]any{
			"status": rejected.Status,
			"code":   rejected.Code,
			"token":  logger.MaskToken(token),
		})
		return fmt.Errorf("%w: %w", ErrTokenRejected, rejected)
	}

	e.metrics.UpstreamRequest(method, outcomeRejected)
	log.Warn().Str("method", method).Str("path", path).
		Int("status", rejected.Status).Str("code", rejected.Code).
		Msg("upstream rejected request")

	return rejected
}
