// Package metrics defines Prometheus metrics for the eBay client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ebaynet"

// eBay API metrics.
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total eBay API requests by environment and HTTP status (\"error\" when no response).",
	}, []string{"environment", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of eBay API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"environment"})
)

// OAuth metrics.
var (
	TokenFetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_fetch_errors_total",
		Help:      "Total number of failed OAuth token requests.",
	})
)
