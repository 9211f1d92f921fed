// Package metrics holds the prometheus collectors of the gateway.
//
// Collectors are registered on an injected [prometheus.Registerer] so tests
// can use a fresh registry. All methods are safe on a nil *Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
)

// Metrics groups the gateway collectors.
type Metrics struct {
	tokenRefresh     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
	authOutcomes     *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tokenRefresh: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_token_refresh_total",
				Help: "Upstream access token refreshes by result.",
			},
			[]string{"result"},
		),
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_upstream_requests_total",
				Help: "Upstream CRM requests by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crm_circuit_breaker_state",
				Help: "Current state of the upstream circuit breaker (0=closed, 1=half-open, 2=open).",
			},
			[]string{"name"},
		),
		authOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_outcomes_total",
				Help: "Authentication operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}

	reg.MustRegister(m.tokenRefresh, m.upstreamRequests, m.breakerState, m.authOutcomes)

	return m
}

// TokenRefresh counts one refresh attempt. result is "success" or "failure".
func (m *Metrics) TokenRefresh(result string) {
	if m == nil {
		return
	}
	m.tokenRefresh.WithLabelValues(result).Inc()
}

// UpstreamRequest counts one upstream call.
func (m *Metrics) UpstreamRequest(method, outcome string) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(method, outcome).Inc()
}

// BreakerState records the current breaker state.
func (m *Metrics) BreakerState(name string, state gobreaker.State) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(stateToFloat(state))
}

// AuthOutcome counts one finished authentication operation.
func (m *Metrics) AuthOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.authOutcomes.WithLabelValues(operation, outcome).Inc()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
