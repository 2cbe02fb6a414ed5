//go:build unit || e2e

package builder

import (
	"time"

	"fitclub-core/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Date       time.Time
	Start      reservation.TimeOfDay
	End        reservation.TimeOfDay
	Status     reservation.Status
	Attendance *reservation.Attendance
	CreatedAt  time.Time
}

// NewReservationBuilder defaults to a confirmed 10:00-11:00 session on date.
func NewReservationBuilder(userID uuid.UUID, date time.Time) *ReservationBuilder {
	return &ReservationBuilder{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		Start:     reservation.TimeOfDay(10 * 60),
		End:       reservation.TimeOfDay(11 * 60),
		Status:    reservation.StatusConfirmed,
		CreatedAt: date.AddDate(0, 0, -1),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildDomain() *reservation.Reservation {
	slot, err := reservation.NewSlot(r.Date, r.Start, r.End)
	if err != nil {
		panic(err)
	}
	return reservation.ReconstructReservation(r.ID, r.UserID, slot, r.Status, r.Attendance, r.CreatedAt, r.CreatedAt)
}

// At sets a one-hour session starting at hour:minute.
func (r *ReservationBuilder) At(hour, minute int) *ReservationBuilder {
	r.Start = reservation.TimeOfDay(hour*60 + minute)
	r.End = r.Start.Add(time.Hour)
	return r
}

func (r *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	r.Status = status
	return r
}
