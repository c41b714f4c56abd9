package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeConfirmed = "confirmed"
	OutcomeConflict  = "conflict"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// Bookings counts booking activity. A nil *Bookings records nothing.
type Bookings struct {
	confirmations   *prometheus.CounterVec
	cancellations   prometheus.Counter
	availability    *prometheus.CounterVec
	purged          prometheus.Counter
	rateLimited     prometheus.Counter
	confirmDuration prometheus.Histogram
}

func NewBookings(reg prometheus.Registerer) *Bookings {
	factory := promauto.With(reg)

	return &Bookings{
		confirmations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "court_booking_confirmations_total",
				Help: "Booking confirmation attempts by outcome",
			},
			[]string{"outcome"},
		),
		cancellations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "court_booking_cancellations_total",
				Help: "Bookings moved to Cancelled",
			},
		),
		availability: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "court_availability_queries_total",
				Help: "Free start/end time computations",
			},
			[]string{"kind"},
		),
		purged: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "court_bookings_purged_total",
				Help: "Past bookings deleted by the retention job",
			},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "court_requests_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		confirmDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "court_booking_confirm_duration_seconds",
				Help:    "Time spent in the confirm transaction",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
	}
}

func (m *Bookings) Confirmation(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(outcome).Inc()
	m.confirmDuration.Observe(seconds)
}

func (m *Bookings) Cancelled(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.cancellations.Add(float64(n))
}

func (m *Bookings) AvailabilityQuery(kind string) {
	if m == nil {
		return
	}
	m.availability.WithLabelValues(kind).Inc()
}

func (m *Bookings) Purged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.purged.Add(float64(n))
}

func (m *Bookings) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
