package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock

type ReservationCommands interface {
	Create(ctx context.Context, userID uuid.UUID, date time.Time, start reservation.TimeOfDay) (*reservation.Reservation, error)
	Cancel(ctx context.Context, reservationID, userID uuid.UUID) error
	MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*reservation.Reservation, error)
}

type MarkAttendanceInput struct {
	ReservationID uuid.UUID
	StaffID       uuid.UUID
	Attended      bool
	Notes         string
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	policy  reservation.Policy
	cache   shared.AvailabilityCache
	metrics shared.Metrics
	clock   clock.Clock
	loc     *time.Location
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	policy reservation.Policy,
	cache shared.AvailabilityCache,
	metrics shared.Metrics,
	clock clock.Clock,
	loc *time.Location,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		policy:  policy,
		cache:   cache,
		metrics: metrics,
		clock:   clock,
		loc:     loc,
	}
}

// Create books a one-hour session. The date lock is the first statement of the
// transaction; under read committed every later read then sees the bookings
// committed by whoever held the lock before, so two requests for the last place
// cannot both succeed.
func (c *reservationCommandsImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	start reservation.TimeOfDay,
) (*reservation.Reservation, error) {
	date = clock.StartOfDay(date, c.loc)

	var created *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().LockDate(ctx, date); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		now := c.clock.Now()

		assignments, err := tx.Assignments().ListActiveByUser(ctx, userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !membership.HasValid(assignments, now) {
			return ErrMembershipRequired
		}

		sameDate, err := tx.Reservations().ListActiveByDate(ctx, date)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		slot, err := c.policy.Check(reservation.Booking{UserID: userID, Date: date, Start: start}, now, sameDate)
		if err != nil {
			return err
		}

		r, err := reservation.NewReservation(userID, slot, now)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, r); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		created = r
		return nil
	})

	switch {
	case err == nil:
		c.metrics.BookingAttempt(shared.OutcomeBooked)
	case errors.Is(err, reservation.ErrValidation):
		c.metrics.BookingAttempt(shared.OutcomeRejected)
		return nil, err
	case errs.Is(err, ErrMembershipRequired):
		c.metrics.BookingAttempt(shared.OutcomeNoMember)
		return nil, err
	default:
		c.metrics.BookingAttempt(shared.OutcomeStorageFail)
		return nil, err
	}

	slog.Info("reservation created",
		slog.String("reservation_id", created.ID().String()),
		slog.String("user_id", userID.String()),
		slog.String("date", date.Format(time.DateOnly)),
		slog.String("start", created.Slot().Start().String()))

	c.invalidate(ctx, date)
	return created, nil
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, reservationID, userID uuid.UUID) error {
	var date time.Time
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(ErrNothingToCancel, ErrNotFoundOrPast)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !r.IsOwnedBy(userID) {
			return errs.Mark(ErrNothingToCancel, ErrNotFoundOrPast)
		}

		if err := r.Cancel(c.clock.Now()); err != nil {
			if errors.Is(err, ErrAlreadyCancelled) || errors.Is(err, ErrCancelWindowClosed) {
				return errs.Mark(err, ErrNotFoundOrPast)
			}
			return err
		}
		if err := tx.Reservations().Update(ctx, r); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		date = r.Date()
		return nil
	})
	if err != nil {
		return err
	}

	c.metrics.ReservationCancelled()
	slog.Info("reservation cancelled",
		slog.String("reservation_id", reservationID.String()),
		slog.String("user_id", userID.String()))

	c.invalidate(ctx, date)
	return nil
}

func (c *reservationCommandsImpl) MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*reservation.Reservation, error) {
	var marked *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		staff, err := tx.Users().FindByID(ctx, in.StaffID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrForbidden
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !staff.Role().IsStaff() {
			return ErrForbidden
		}

		r, err := tx.Reservations().FindByIDForUpdate(ctx, in.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationMissing
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := r.MarkAttendance(in.StaffID, in.Attended, in.Notes, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, r); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		marked = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.metrics.AttendanceMarked(in.Attended)
	c.invalidate(ctx, marked.Date())
	return marked, nil
}

// invalidate runs after commit; a stale entry only expires later, so failures are logged.
func (c *reservationCommandsImpl) invalidate(ctx context.Context, date time.Time) {
	if err := c.cache.Invalidate(ctx, date); err != nil {
		slog.Warn("availability cache invalidation failed",
			slog.String("date", date.Format(time.DateOnly)),
			slog.Any("error", err))
	}
}
