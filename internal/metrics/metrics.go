// Package metrics exposes Prometheus counters for the HTTP service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route pattern, and status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// CommentsRejected counts comments rejected by the moderation filter.
	CommentsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_comments_rejected_total",
			Help: "Total number of comments rejected for banned words",
		},
	)

	// NotesCreated counts successfully created notes.
	NotesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_notes_created_total",
			Help: "Total number of notes created",
		},
	)
)

// Register registers all collectors with the default registry. Call once at startup.
func Register() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(CommentsRejected)
	prometheus.MustRegister(NotesCreated)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
