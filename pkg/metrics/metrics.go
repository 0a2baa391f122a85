// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// MessagesTotal tracks messages appended to conversations, by role.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_total",
			Help: "Total messages appended to conversations",
		},
		[]string{"role"},
	)

	// ConversationsTotal tracks conversation lifecycle operations.
	ConversationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversations_total",
			Help: "Total conversation operations",
		},
		[]string{"operation"},
	)

	// LLMRequestDuration tracks inference request duration.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Inference request duration in seconds",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"model", "status"},
	)

	// LLMFallbacksTotal tracks inference calls answered with a fallback string.
	LLMFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_fallbacks_total",
			Help: "Inference calls that returned a fallback reply",
		},
		[]string{"model", "reason"},
	)

	// DocumentsAnalyzedTotal tracks analyzed documents by format.
	DocumentsAnalyzedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_analyzed_total",
			Help: "Total documents analyzed",
		},
		[]string{"format"},
	)

	// DocumentTruncationsTotal tracks documents truncated before prompting.
	DocumentTruncationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "document_truncations_total",
			Help: "Documents whose extracted text was truncated before prompting",
		},
	)

	// EventsPublishedTotal tracks events published to NATS.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total conversation events published",
		},
		[]string{"type", "status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMRequest records metrics for one inference round trip.
func RecordLLMRequest(model, status string, duration float64) {
	LLMRequestDuration.WithLabelValues(model, status).Observe(duration)
}
