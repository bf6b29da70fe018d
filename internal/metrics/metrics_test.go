package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(bookings.WithLabelValues(OutcomeConflict))
	IncBooking(OutcomeConflict)
	assert.Equal(t, before+1, testutil.ToFloat64(bookings.WithLabelValues(OutcomeConflict)))

	IncHTTP("", 404)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "404")))

	assert.NotPanics(t, func() { ObserveRoundRobinAttempts(2) })
}
