package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Quote metrics
	QuoteCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "getstocks_quotes_total",
			Help: "Ticker quote lookups by outcome",
		},
		[]string{"status"},
	)
	QuoteLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "getstocks_quote_latency_seconds",
			Help:    "Time to fetch one ticker quote",
			Buckets: prometheus.DefBuckets,
		})

	// Publish metrics
	PublishOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "getstocks_publish_operations_total",
			Help: "Queue operations by backend, operation and outcome",
		},
		[]string{"backend", "operation", "status"},
	)
	PublishLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "getstocks_publish_latency_seconds",
			Help:    "Time to submit one batch",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
	PublishedMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "getstocks_published_messages_total",
			Help: "Messages successfully submitted to the queue",
		},
		[]string{"backend"},
	)

	// API metrics
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	APIRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total API requests",
		},
		[]string{"method", "endpoint", "status"},
	)
)

func init() {
	// MustRegister panics if registration fails (e.g. duplicate)
	prometheus.MustRegister(
		QuoteCounter, QuoteLatency,
		PublishOperations, PublishLatency, PublishedMessages,
		APIRequestDuration, APIRequestTotal,
	)
}

// Status returns "success" or "error" for metric labels.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
