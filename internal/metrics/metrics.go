package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// WorksSavedTotal counts saved work entries by kind (created, updated).
	WorksSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "works_saved_total",
			Help: "Total number of work entries saved",
		},
		[]string{"kind"},
	)

	// WorksDeletedTotal counts deleted work entries.
	WorksDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "works_deleted_total",
			Help: "Total number of work entries deleted",
		},
	)

	// UsersOverCap is the number of users over their daily minute cap, as of
	// the last digest run.
	UsersOverCap = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_over_cap",
			Help: "Number of users over their daily minute cap at the last digest",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, WorksSavedTotal, WorksDeletedTotal, UsersOverCap)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// AddWorksSaved increments the saved-works counter for the given kind (created, updated).
func AddWorksSaved(kind string, n int) {
	WorksSavedTotal.WithLabelValues(kind).Add(float64(n))
}

// AddWorksDeleted increments the deleted-works counter.
func AddWorksDeleted(n int) {
	WorksDeletedTotal.Add(float64(n))
}

// SetUsersOverCap records the digest result.
func SetUsersOverCap(n int) {
	UsersOverCap.Set(float64(n))
}
