// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PlanRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Planning runs started.",
	})

	Candidates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_candidates_total",
		Help: "Candidates computed, by schedule status and failure kind.",
	}, []string{"status", "failure"})

	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_provider_duration_seconds",
		Help:    "Latency of external geocoding and routing calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "op", "outcome"})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_http_requests_total",
		Help: "HTTP requests by method, route pattern and status.",
	}, []string{"method", "endpoint", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route pattern and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
