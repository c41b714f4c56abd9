package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingsCounters(t *testing.T) {
	t.Parallel()

	m := NewBookings(prometheus.NewRegistry())

	m.Confirmation(OutcomeConfirmed, 0.01)
	m.Confirmation(OutcomeConflict, 0.02)
	m.Confirmation(OutcomeConflict, 0.02)
	m.Cancelled(2)
	m.Cancelled(0)
	m.AvailabilityQuery("start")
	m.Purged(5)
	m.RateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.confirmations.WithLabelValues(OutcomeConfirmed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.confirmations.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cancellations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.availability.WithLabelValues("start")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.purged))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}

func TestNilBookingsIsSafe(t *testing.T) {
	t.Parallel()

	var m *Bookings

	assert.NotPanics(t, func() {
		m.Confirmation(OutcomeError, 1)
		m.Cancelled(1)
		m.AvailabilityQuery("end")
		m.Purged(1)
		m.RateLimited()
	})
}
