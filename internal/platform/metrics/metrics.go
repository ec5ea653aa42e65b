// Package metrics provides the Prometheus collectors for upstream model calls,
// generation outcomes and HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storyforge"

// Recorder groups the collectors. It is registered against an explicit
// Registerer rather than the global one so tests can use isolated registries.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamRetries  *prometheus.CounterVec
	tierFallbacks    *prometheus.CounterVec
	generations      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		upstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "calls_total",
				Help:      "Total number of HTTP calls to the language model API",
			},
			[]string{"tier", "auth", "outcome"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "call_duration_seconds",
				Help:      "Duration of HTTP calls to the language model API",
				Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"tier"},
		),
		upstreamRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "retries_total",
				Help:      "Total number of retried language model calls",
			},
			[]string{"tier"},
		),
		tierFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "tier_fallbacks_total",
				Help:      "High-quality calls re-run on the fast tier, by fallback outcome",
			},
			[]string{"outcome"},
		),
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "generation",
				Name:      "total",
				Help:      "Generation requests by content type and outcome (generated or fallback)",
			},
			[]string{"content_type", "outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .05, .1, .5, 1, 5, 30, 60, 120, 300},
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveUpstreamCall records one HTTP call to the model API.
func (r *Recorder) ObserveUpstreamCall(tier, auth, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.upstreamCalls.WithLabelValues(tier, auth, outcome).Inc()
	r.upstreamDuration.WithLabelValues(tier).Observe(d.Seconds())
}

// IncRetry records a retry on the given tier.
func (r *Recorder) IncRetry(tier string) {
	if r == nil {
		return
	}
	r.upstreamRetries.WithLabelValues(tier).Inc()
}

// IncTierFallback records a high-quality call re-run on the fast tier.
func (r *Recorder) IncTierFallback(outcome string) {
	if r == nil {
		return
	}
	r.tierFallbacks.WithLabelValues(outcome).Inc()
}

// IncGeneration records the outcome of a generation request.
func (r *Recorder) IncGeneration(contentType, outcome string) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(contentType, outcome).Inc()
}

// ObserveHTTPRequest records a served HTTP request.
func (r *Recorder) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
