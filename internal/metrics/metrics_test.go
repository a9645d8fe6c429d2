package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/bookings", "200", 0.5)

	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/bookings", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/api/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/api/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/api/auth/login", "401", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/auth/login", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/auth/login", "401")))
}

func TestRecordBooking(t *testing.T) {
	BookingsTotal.Reset()

	RecordBooking("pending")
	RecordBooking("pending")
	RecordBooking("cancelled")

	assert.Equal(t, float64(2), testutil.ToFloat64(BookingsTotal.WithLabelValues("pending")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingsTotal.WithLabelValues("cancelled")))
}

func TestRecordBookingDeletion(t *testing.T) {
	before := testutil.ToFloat64(BookingDeletionsTotal)

	RecordBookingDeletion()

	assert.Equal(t, before+1, testutil.ToFloat64(BookingDeletionsTotal))
}

func TestRecordDuplicate(t *testing.T) {
	DuplicateRejectionsTotal.Reset()

	RecordDuplicate("booking")
	RecordDuplicate("email")

	assert.Equal(t, float64(1), testutil.ToFloat64(DuplicateRejectionsTotal.WithLabelValues("booking")))
	assert.Equal(t, float64(1), testutil.ToFloat64(DuplicateRejectionsTotal.WithLabelValues("email")))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("confirmation", "success")
	RecordEmail("reminder", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("confirmation", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("reminder", "failed")))
}

func TestGauges(t *testing.T) {
	SetEmailQueueLength(7)
	SetActiveSessions(3)

	assert.Equal(t, float64(7), testutil.ToFloat64(EmailQueueLength))
	assert.Equal(t, float64(3), testutil.ToFloat64(ActiveSessions))
}
