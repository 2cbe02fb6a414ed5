package repository

import (
	"context"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/infra/db"
	"fitclub-core/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `id, user_id, date, start_time, end_time, status, attended, marked_by, marked_at, notes, created_at, updated_at`

// ReservationRepository anchors DATE columns at midnight in the club location.
type ReservationRepository struct {
	db  db.DBTX
	loc *time.Location
}

func NewReservationRepository(dbtx db.DBTX, loc *time.Location) *ReservationRepository {
	return &ReservationRepository{db: dbtx, loc: loc}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	attended, markedBy, markedAt, notes := attendanceParams(res.Attendance())
	slot := res.Slot()
	_, err := r.db.Exec(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		res.ID(), res.UserID(),
		pgconv.DateToPgtype(slot.Date()),
		pgconv.MinutesToPgtime(slot.Start().Minutes()),
		pgconv.MinutesToPgtime(slot.End().Minutes()),
		res.Status().String(),
		attended, markedBy, markedAt, notes,
		res.CreatedAt(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := r.scan(r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *ReservationRepository) ListActiveByDate(ctx context.Context, date time.Time) ([]*reservation.Reservation, error) {
	return r.list(ctx, "failed to list reservations by date",
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE date = $1 AND status <> 'cancelled'
		 ORDER BY start_time, created_at`, pgconv.DateToPgtype(date))
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID, from time.Time) ([]*reservation.Reservation, error) {
	return r.list(ctx, "failed to list reservations by user",
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE user_id = $1 AND date >= $2
		 ORDER BY date, start_time`, userID, pgconv.DateToPgtype(from))
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	attended, markedBy, markedAt, notes := attendanceParams(res.Attendance())
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations
		 SET status = $2, attended = $3, marked_by = $4, marked_at = $5, notes = $6, updated_at = $7
		 WHERE id = $1`,
		res.ID(), res.Status().String(), attended, markedBy, markedAt, notes, res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("reservation not found")
	}
	return nil
}

func (r *ReservationRepository) list(ctx context.Context, failMsg, query string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		res, err := r.scan(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	return out, nil
}

func (r *ReservationRepository) scan(row pgx.Row) (*reservation.Reservation, error) {
	var rr reservationRow
	err := row.Scan(&rr.ID, &rr.UserID, &rr.Date, &rr.StartTime, &rr.EndTime, &rr.Status,
		&rr.Attended, &rr.MarkedBy, &rr.MarkedAt, &rr.Notes, &rr.CreatedAt, &rr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rr.toDomain(r.loc)
}
