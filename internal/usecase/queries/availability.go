package queries

import (
	"context"
	"log/slog"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/usecase/shared"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, date time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow    shared.UnitOfWork
	policy reservation.Policy
	cache  shared.AvailabilityCache
	loc    *time.Location
}

func NewAvailabilityQueries(
	uow shared.UnitOfWork,
	policy reservation.Policy,
	cache shared.AvailabilityCache,
	loc *time.Location,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:    uow,
		policy: policy,
		cache:  cache,
		loc:    loc,
	}
}

// GetAvailability reads through the cache. Closed days are computed like any
// other and flagged with Closed; refusing them is up to the caller.
func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, date time.Time) (*AvailabilityView, error) {
	date = clock.StartOfDay(date, q.loc)
	closed := q.policy.IsClosedOn(date)

	slots, hit, err := q.cache.Get(ctx, date)
	if err != nil {
		slog.Warn("availability cache read failed", slog.Any("error", err))
	}
	if hit {
		return newAvailabilityView(date, closed, slots), nil
	}

	var reservations []*reservation.Reservation
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		reservations, err = tx.Reservations().ListActiveByDate(ctx, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	slots = q.policy.Availability(date, reservations)
	if err := q.cache.Set(ctx, date, slots); err != nil {
		slog.Warn("availability cache write failed", slog.Any("error", err))
	}
	return newAvailabilityView(date, closed, slots), nil
}
