package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors implements shared.Metrics on Prometheus.
type Collectors struct {
	bookings         *prometheus.CounterVec
	cancellations    prometheus.Counter
	attendance       *prometheus.CounterVec
	sweepRuns        *prometheus.CounterVec
	sweepDuration    prometheus.Histogram
	expiredTotal     prometheus.Counter
	deactivatedTotal prometheus.Counter
}

func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitclub",
			Name:      "booking_attempts_total",
			Help:      "Reservation create attempts by outcome.",
		}, []string{"outcome"}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitclub",
			Name:      "reservations_cancelled_total",
			Help:      "Reservations cancelled by their owner.",
		}),
		attendance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitclub",
			Name:      "attendance_marked_total",
			Help:      "Sessions marked by staff.",
		}, []string{"attended"}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitclub",
			Name:      "expiry_sweeps_total",
			Help:      "Expiry sweep passes by result.",
		}, []string{"result"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fitclub",
			Name:      "expiry_sweep_duration_seconds",
			Help:      "Duration of successful expiry sweep passes.",
			Buckets:   prometheus.DefBuckets,
		}),
		expiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitclub",
			Name:      "assignments_expired_total",
			Help:      "Membership assignments deactivated by the sweep.",
		}),
		deactivatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitclub",
			Name:      "users_deactivated_total",
			Help:      "Users deactivated because no valid membership remained.",
		}),
	}

	reg.MustRegister(
		c.bookings,
		c.cancellations,
		c.attendance,
		c.sweepRuns,
		c.sweepDuration,
		c.expiredTotal,
		c.deactivatedTotal,
	)
	return c
}

func (c *Collectors) BookingAttempt(outcome string) {
	c.bookings.WithLabelValues(outcome).Inc()
}

func (c *Collectors) ReservationCancelled() {
	c.cancellations.Inc()
}

func (c *Collectors) AttendanceMarked(attended bool) {
	c.attendance.WithLabelValues(strconv.FormatBool(attended)).Inc()
}

func (c *Collectors) SweepCompleted(expired, deactivatedUsers int, elapsed time.Duration) {
	c.sweepRuns.WithLabelValues("ok").Inc()
	c.sweepDuration.Observe(elapsed.Seconds())
	c.expiredTotal.Add(float64(expired))
	c.deactivatedTotal.Add(float64(deactivatedUsers))
}

func (c *Collectors) SweepFailed() {
	c.sweepRuns.WithLabelValues("error").Inc()
}
