package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_planner_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_planner_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LookupResults counts third-party lookup attempts per provider.
	// outcome is one of ok, error, cached, fallback.
	LookupResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_planner_lookup_results_total",
		Help: "Third-party lookup attempts by service, provider and outcome.",
	}, []string{"service", "provider", "outcome"})
)
