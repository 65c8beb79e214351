package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fftpricer_requests_total",
			Help: "Pricing requests by endpoint, model and outcome.",
		}, []string{"endpoint", "model", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fftpricer_pricing_seconds",
			Help:    "Time spent pricing a request.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"endpoint", "model"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}
