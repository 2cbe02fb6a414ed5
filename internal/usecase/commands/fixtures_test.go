//go:build unit

package commands_test

import (
	"sync"
	"testing"
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/tests/common/builder"
	"fitclub-core/tests/common/memstore"

	"github.com/stretchr/testify/require"
)

var (
	// Sunday evening; Monday is the first bookable day.
	now        = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	monday     = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday    = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	nextSunday = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
)

type recordingMetrics struct {
	mu          sync.Mutex
	bookings    map[string]int
	cancelled   int
	attendance  int
	sweeps      int
	sweepFailed int
	expired     int
	deactivated int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{bookings: map[string]int{}}
}

func (m *recordingMetrics) BookingAttempt(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[outcome]++
}

func (m *recordingMetrics) ReservationCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelled++
}

func (m *recordingMetrics) AttendanceMarked(bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance++
}

func (m *recordingMetrics) SweepCompleted(expired, deactivated int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweeps++
	m.expired += expired
	m.deactivated += deactivated
}

func (m *recordingMetrics) SweepFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepFailed++
}

func (m *recordingMetrics) booked(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[outcome]
}

type world struct {
	store   *memstore.Store
	clock   *clock.MockClock
	metrics *recordingMetrics
	plan    *membership.Plan
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		store:   memstore.New(),
		clock:   clock.NewMockClock(now),
		metrics: newRecordingMetrics(),
		plan:    builder.NewPlanBuilder().BuildDomain(),
	}
	w.store.PutPlan(w.plan)
	return w
}

// member seeds an active user holding a valid assignment of the default plan.
func (w *world) member(t *testing.T) *user.User {
	t.Helper()
	u := builder.NewUserBuilder().BuildDomain()
	w.store.PutUser(u)
	w.store.PutAssignment(builder.NewAssignmentBuilder(u.ID(), w.plan.ID(), now).BuildDomain())
	return u
}

func (w *world) userWithRole(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u := builder.NewUserBuilder().WithRole(role).BuildDomain()
	w.store.PutUser(u)
	return u
}

func tod(t *testing.T, s string) reservation.TimeOfDay {
	t.Helper()
	v, err := reservation.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func violationCodes(t *testing.T, err error) []string {
	t.Helper()
	var ve *reservation.ValidationErrors
	require.ErrorAs(t, err, &ve)
	codes := make([]string, 0, len(ve.Violations))
	for _, v := range ve.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}
