package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogaslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yogaslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogaslot_bookings_total",
			Help: "Bookings created or moved into a status",
		},
		[]string{"status"},
	)

	BookingDeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yogaslot_booking_deletions_total",
			Help: "Total number of deleted bookings",
		},
	)

	DuplicateRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogaslot_duplicate_rejections_total",
			Help: "Writes refused because of a duplicate booking, email or phone",
		},
		[]string{"kind"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogaslot_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "yogaslot_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "yogaslot_active_sessions",
			Help: "Browser sessions currently held in memory",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordBookingDeletion() {
	BookingDeletionsTotal.Inc()
}

func RecordDuplicate(kind string) {
	DuplicateRejectionsTotal.WithLabelValues(kind).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}

func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}
