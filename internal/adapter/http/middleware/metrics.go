package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/novabank/docgen/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP request and document download metrics.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics collection.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)

		if docType := docTypeFromPath(path); docType != "" {
			switch {
			case wrapped.statusCode == http.StatusOK:
				format := formatFromContentType(wrapped.Header().Get("Content-Type"))
				m.metrics.DocumentsGenerated.WithLabelValues(docType, format).Inc()
				m.metrics.DocumentBytes.WithLabelValues(docType, format).Observe(float64(wrapped.bytes))
				m.metrics.GenerationDuration.WithLabelValues(docType, format).Observe(duration)
			case wrapped.statusCode >= http.StatusInternalServerError:
				m.metrics.DocumentErrors.WithLabelValues(docType).Inc()
			}
		}
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
	bytes      int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *metricsRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// docTypeFromPath maps download routes to a document type label. Non-download
// routes return the empty string.
func docTypeFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, "/statement"):
		return "statement"
	case path == "/api/v1/transactions/export":
		return "transaction-history"
	case strings.HasSuffix(path, "/certificate/download"):
		return "certificate"
	case path == "/api/v1/fixed-deposits/export":
		return "deposit-list"
	default:
		return ""
	}
}

// formatFromContentType maps a response content type to a format label.
func formatFromContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "application/pdf"):
		return "pdf"
	case strings.HasPrefix(contentType, "text/csv"):
		return "csv"
	default:
		return "other"
	}
}

// normalizePath replaces entity IDs with a placeholder to keep label
// cardinality bounded.
func normalizePath(path string) string {
	for _, prefix := range []string{"/api/v1/accounts/", "/api/v1/fixed-deposits/"} {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := path[len(prefix):]
		if rest == "" || rest[0] == '/' {
			continue
		}
		// Suffixes like /export and /project are route names, not IDs.
		if !strings.Contains(rest, "/") && isRouteWord(rest) {
			continue
		}

		suffix := ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			suffix = rest[i:]
		}
		return prefix + ":id" + suffix
	}

	return path
}

func isRouteWord(s string) bool {
	switch s {
	case "export", "project":
		return true
	}
	return false
}
