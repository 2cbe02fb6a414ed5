package shared

import (
	"context"
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read committed transaction for writes, retried on serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent multi-table snapshot for queries
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Users() UserRepository
	Plans() PlanRepository
	Assignments() AssignmentRepository
	Reservations() ReservationRepository
	Locks() SlotLocker
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	// FindByIDForUpdate serializes activation against the expiry sweep for the same user.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*user.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*membership.Plan, error)
	ListOffered(ctx context.Context) ([]*membership.Plan, error)
}

type AssignmentRepository interface {
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*membership.Assignment, error)
	// ListExpiredActive returns active assignments with end < now. Rows are not locked;
	// callers lock the owning user first and re-read.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*membership.Assignment, error)
	Create(ctx context.Context, a *membership.Assignment) error
	Deactivate(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeactivateAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ListActiveByDate returns the non-cancelled reservations of a date, club-wide.
	ListActiveByDate(ctx context.Context, date time.Time) ([]*reservation.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, from time.Time) ([]*reservation.Reservation, error)
	Update(ctx context.Context, r *reservation.Reservation) error
}

// SlotLocker serializes bookings on the same date until the transaction ends.
type SlotLocker interface {
	LockDate(ctx context.Context, date time.Time) error
}
