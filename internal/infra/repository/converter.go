package repository

import (
	"fmt"
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Row types mirror table columns; conversion to domain happens only here.

type userRow struct {
	ID        uuid.UUID
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r userRow) toDomain() (*user.User, error) {
	role, err := user.NewRole(r.Role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", r.ID, err)
	}
	return user.ReconstructUser(r.ID, role, r.IsActive, r.CreatedAt, r.UpdatedAt), nil
}

type planRow struct {
	ID            uuid.UUID
	Name          string
	PriceCents    int64
	DurationDays  int32
	AllowsRoutine bool
	AllowsDiet    bool
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r planRow) toDomain() (*membership.Plan, error) {
	price, err := membership.NewMoney(r.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", r.ID, err)
	}
	return membership.ReconstructPlan(r.ID, r.Name, price, int(r.DurationDays),
		r.AllowsRoutine, r.AllowsDiet, r.IsActive, r.CreatedAt, r.UpdatedAt), nil
}

type assignmentRow struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	PlanID     uuid.UUID
	PriceCents int64
	StartAt    time.Time
	EndAt      time.Time
	IsActive   bool
	CreatedAt  time.Time
}

func (r assignmentRow) toDomain() (*membership.Assignment, error) {
	price, err := membership.NewMoney(r.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("assignment %s: %w", r.ID, err)
	}
	window, err := membership.NewWindow(r.StartAt, r.EndAt)
	if err != nil {
		return nil, fmt.Errorf("assignment %s: %w", r.ID, err)
	}
	return membership.ReconstructAssignment(r.ID, r.UserID, r.PlanID, price, window, r.IsActive, r.CreatedAt), nil
}

type reservationRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      pgtype.Date
	StartTime pgtype.Time
	EndTime   pgtype.Time
	Status    string
	Attended  pgtype.Bool
	MarkedBy  pgtype.UUID
	MarkedAt  pgtype.Timestamptz
	Notes     pgtype.Text
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r reservationRow) toDomain(loc *time.Location) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
	}
	slot, err := reservation.NewSlot(
		pgconv.DateFromPgtype(r.Date, loc),
		reservation.TimeOfDay(pgconv.MinutesFromPgtime(r.StartTime)),
		reservation.TimeOfDay(pgconv.MinutesFromPgtime(r.EndTime)),
	)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
	}

	var attendance *reservation.Attendance
	if r.Attended.Valid {
		attendance = &reservation.Attendance{Attended: r.Attended.Bool}
		if id := pgconv.UUIDPtrFromPgtype(r.MarkedBy); id != nil {
			attendance.MarkedBy = *id
		}
		if at := pgconv.TimePtrFromPgtype(r.MarkedAt); at != nil {
			attendance.MarkedAt = *at
		}
		if notes := pgconv.StringPtrFromPgtype(r.Notes); notes != nil {
			attendance.Notes = *notes
		}
	}

	return reservation.ReconstructReservation(r.ID, r.UserID, slot, status, attendance, r.CreatedAt, r.UpdatedAt), nil
}

// attendanceParams flattens optional attendance into nullable columns.
func attendanceParams(a *reservation.Attendance) (pgtype.Bool, pgtype.UUID, pgtype.Timestamptz, pgtype.Text) {
	if a == nil {
		return pgtype.Bool{}, pgtype.UUID{}, pgtype.Timestamptz{}, pgtype.Text{}
	}
	var notes *string
	if a.Notes != "" {
		notes = &a.Notes
	}
	return pgtype.Bool{Bool: a.Attended, Valid: true},
		pgconv.UUIDPtrToPgtype(&a.MarkedBy),
		pgconv.TimePtrToPgtype(&a.MarkedAt),
		pgconv.StringPtrToPgtype(notes)
}
