package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_CountsByLabel(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveUpstreamCall("fast", "header", "success", 2*time.Second)
	r.ObserveUpstreamCall("fast", "header", "success", time.Second)
	r.ObserveUpstreamCall("quality", "query", "timeout", time.Minute)
	r.IncRetry("fast")
	r.IncTierFallback("success")
	r.IncGeneration("article", "fallback")
	r.ObserveHTTPRequest("POST", "/api/generate", 200, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.upstreamCalls.WithLabelValues("fast", "header", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamCalls.WithLabelValues("quality", "query", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamRetries.WithLabelValues("fast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.tierFallbacks.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generations.WithLabelValues("article", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("POST", "/api/generate", "200")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveUpstreamCall("fast", "header", "success", time.Second)
		r.IncRetry("fast")
		r.IncTierFallback("failure")
		r.IncGeneration("novel", "generated")
		r.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
	})
}
