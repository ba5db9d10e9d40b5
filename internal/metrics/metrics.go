package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hooping_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hooping_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hooping_bookings_submitted_total",
			Help: "Total number of booking requests submitted",
		},
	)

	BookingDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hooping_booking_decisions_total",
			Help: "Total number of booking decisions by outcome",
		},
		[]string{"outcome"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hooping_booking_conflicts_total",
			Help: "Total number of approvals or blocks rejected by the conflict detector",
		},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hooping_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	BlocksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hooping_blocks_created_total",
			Help: "Total number of administrative blocks created",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hooping_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hooping_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordDecision(outcome string) {
	BookingDecisionsTotal.WithLabelValues(outcome).Inc()
}

func RecordConflict() {
	BookingConflictsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
