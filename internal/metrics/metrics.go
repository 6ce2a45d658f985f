// Package metrics holds the Prometheus instruments shared by both sites.
// All collectors are registered with the global registry, so mounting
// promhttp.Handler on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todogate_upstream_requests_total",
			Help: "Calls made to the backend API by operation and status code.",
		}, []string{"op", "code"})

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todogate_upstream_duration_seconds",
			Help:    "Latency of backend API calls by operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"})

	AccessStates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todogate_access_state_total",
			Help: "Page renders by site and classified access state.",
		}, []string{"site", "state"})

	LoginOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todogate_login_outcomes_total",
			Help: "Finished login attempts by site and outcome.",
		}, []string{"site", "outcome"})

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todogate_http_requests_total",
			Help: "Requests served by method and status code.",
		}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(
		UpstreamRequests,
		UpstreamDuration,
		AccessStates,
		LoginOutcomes,
		HTTPRequests,
	)
}
