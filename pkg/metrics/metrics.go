package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Scheduling metrics
	BookingsTotal    prometheus.Counter
	BookingConflicts prometheus.Counter
	BookingRejected  *prometheus.CounterVec
	SlotQueries      prometheus.Counter
	SlotCacheHits    prometheus.Counter

	// Event publishing metrics
	EventsPublished *prometheus.CounterVec
	EventsFailed    prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path"}),

		BookingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Total number of successfully scheduled appointments",
		}),
		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Total number of bookings rejected because the slot was taken",
		}),
		BookingRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "Total number of bookings rejected, by error code",
		}, []string{"code"}),
		SlotQueries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_queries_total",
			Help:      "Total number of available-slot computations",
		}),
		SlotCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_cache_hits_total",
			Help:      "Total number of available-slot queries served from cache",
		}),

		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events published",
		}, []string{"event_type"}),
		EventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of domain events that failed to publish",
		}),
	}
}
