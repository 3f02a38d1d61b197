// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "organon",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "organon",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	TreeMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "organon",
		Name:      "project_tree_mutations_total",
		Help:      "Project tree mutations by operation, node kind and whether the path resolved.",
	}, []string{"operation", "kind", "applied"})

	FeedSubscriptions = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "organon",
		Name:      "feed_subscriptions_active",
		Help:      "Open change-feed subscriptions by collection.",
	}, []string{"collection"})

	CalendarSyncFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "organon",
		Name:      "calendar_sync_failures_total",
		Help:      "Google Calendar sync failures by operation.",
	}, []string{"operation"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		TreeMutations,
		FeedSubscriptions,
		CalendarSyncFailures,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
