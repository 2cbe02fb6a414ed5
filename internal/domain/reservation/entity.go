package reservation

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	Attended bool
	MarkedBy uuid.UUID
	MarkedAt time.Time
	Notes    string
}

// Reservation is never deleted; cancellation is a status transition.
type Reservation struct {
	id         uuid.UUID
	userID     uuid.UUID
	slot       Slot
	status     Status
	attendance *Attendance
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReservation books slot for userID. Bookings are confirmed on creation.
func NewReservation(userID uuid.UUID, slot Slot, now time.Time) (*Reservation, error) {
	r := &Reservation{
		id:        uuid.New(),
		userID:    userID,
		slot:      slot,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}
	if err := r.transition(StatusConfirmed, now); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructReservation(
	id, userID uuid.UUID,
	slot Slot,
	status Status,
	attendance *Attendance,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		userID:     userID,
		slot:       slot,
		status:     status,
		attendance: attendance,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) transition(next Status, now time.Time) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

// Cancel is rejected once the session start is strictly before now.
func (r *Reservation) Cancel(now time.Time) error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if r.slot.StartAt().Before(now) {
		return ErrCancelWindowClosed
	}
	return r.transition(StatusCancelled, now)
}

// MarkAttendance completes a confirmed session. A completed one may be re-marked.
func (r *Reservation) MarkAttendance(staffID uuid.UUID, attended bool, notes string, now time.Time) error {
	if r.slot.StartAt().After(now) {
		return ErrSessionNotStarted
	}
	if r.status != StatusCompleted {
		if err := r.transition(StatusCompleted, now); err != nil {
			return err
		}
	}
	r.attendance = &Attendance{
		Attended: attended,
		MarkedBy: staffID,
		MarkedAt: now,
		Notes:    notes,
	}
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) Slot() Slot              { return r.slot }
func (r *Reservation) Date() time.Time         { return r.slot.Date() }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) Attendance() *Attendance { return r.attendance }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
