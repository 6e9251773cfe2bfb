package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MockCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "clauselens", Name: "mock_calls_total", Help: "Number of simulated backend calls by service."},
		[]string{"service"},
	)
	MockLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "clauselens", Name: "mock_latency_seconds", Help: "Simulated round-trip latency by service.", Buckets: prometheus.DefBuckets},
		[]string{"service"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "clauselens", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "clauselens", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(MockCalls)
	reg.MustRegister(MockLatency)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
