package shared

import (
	"context"
	"time"

	"fitclub-core/internal/domain/reservation"
)

// AvailabilityCache stores computed day availability. Booking rules never read it.
//go:generate mockgen -source=types.go -destination=../../../tests/mock/shared/types_mock.go -package=sharedmock

type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time) ([]reservation.SlotAvailability, bool, error)
	Set(ctx context.Context, date time.Time, slots []reservation.SlotAvailability) error
	Invalidate(ctx context.Context, date time.Time) error
}

const (
	OutcomeBooked      = "booked"
	OutcomeRejected    = "rejected"
	OutcomeNoMember    = "membership_required"
	OutcomeStorageFail = "error"
)

type Metrics interface {
	BookingAttempt(outcome string)
	ReservationCancelled()
	AttendanceMarked(attended bool)
	SweepCompleted(expired, deactivatedUsers int, elapsed time.Duration)
	SweepFailed()
}

type NopMetrics struct{}

func (NopMetrics) BookingAttempt(string)                  {}
func (NopMetrics) ReservationCancelled()                  {}
func (NopMetrics) AttendanceMarked(bool)                  {}
func (NopMetrics) SweepCompleted(int, int, time.Duration) {}
func (NopMetrics) SweepFailed()                           {}
