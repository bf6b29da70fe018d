package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Booking outcomes.
const (
	OutcomeBooked              = "booked"
	OutcomeConflict            = "conflict"
	OutcomeNoAvailableEmployee = "no_available_employee"
	OutcomeRejected            = "rejected"
	OutcomeError               = "error"
)

var (
	once sync.Once

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome.",
		},
		[]string{"outcome"},
	)

	roundRobinAttempts = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "round_robin_attempts",
			Help:      "Employees checked before a round-robin assignment succeeded.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookings, roundRobinAttempts, httpRequests)
	})
}

func IncBooking(outcome string) {
	bookings.WithLabelValues(outcome).Inc()
}

func ObserveRoundRobinAttempts(n int) {
	roundRobinAttempts.Observe(float64(n))
}

func IncHTTP(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
