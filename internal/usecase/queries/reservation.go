package queries

import (
	"context"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

type ReservationQueries interface {
	// ListMine returns the user's reservations dated from onwards; a zero from means today.
	ListMine(ctx context.Context, userID uuid.UUID, from time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

func NewReservationQueries(uow shared.UnitOfWork, clock clock.Clock, loc *time.Location) ReservationQueries {
	return &reservationQueriesImpl{
		uow:   uow,
		clock: clock,
		loc:   loc,
	}
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, from time.Time) ([]*ReservationView, error) {
	if from.IsZero() {
		from = clock.Today(q.clock, q.loc)
	} else {
		from = clock.StartOfDay(from, q.loc)
	}

	var rows []*reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rows, err = tx.Reservations().ListByUser(ctx, userID, from)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]*ReservationView, 0, len(rows))
	for _, r := range rows {
		views = append(views, NewReservationView(r))
	}
	return views, nil
}
