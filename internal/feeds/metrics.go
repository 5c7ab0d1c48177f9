package feeds

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astrosky_feed_fetch_total",
		Help: "Total number of feed fetches by source and outcome.",
	}, []string{"source", "outcome"})
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "astrosky_feed_fetch_duration_seconds",
		Help:    "Latency of feed fetches that reached the network.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"source"})
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "astrosky_feed_breaker_state",
		Help: "Circuit breaker state per feed (0 closed, 1 open, 2 half-open).",
	}, []string{"source"})
)

func observeFetch(source string, kind ErrorKind, elapsed time.Duration) {
	outcome := "ok"
	if kind != "" {
		outcome = string(kind)
	}
	fetchTotal.WithLabelValues(source, outcome).Inc()
	if kind != KindCircuitOpen && kind != KindMissingCredential {
		fetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	}
}

func setBreakerGauge(source string, state BreakerState) {
	breakerState.WithLabelValues(source).Set(float64(state))
}
