package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Document generation metrics
	DocumentsGenerated *prometheus.CounterVec
	DocumentBytes      *prometheus.HistogramVec
	DocumentErrors     *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Document generation metrics
		DocumentsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docgen_documents_generated_total",
				Help: "Total documents generated by type and format",
			},
			[]string{"doc_type", "format"},
		),
		DocumentBytes: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docgen_document_bytes",
				Help:    "Size of generated documents in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"doc_type", "format"},
		),
		DocumentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docgen_document_errors_total",
				Help: "Total document generation errors by type",
			},
			[]string{"doc_type"},
		),
		GenerationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docgen_generation_duration_seconds",
				Help:    "Duration of document generation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"doc_type", "format"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docgen_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docgen_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
