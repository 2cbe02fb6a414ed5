package repository

import (
	"context"
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const assignmentColumns = `id, user_id, plan_id, price_cents, start_at, end_at, is_active, created_at`

type AssignmentRepository struct {
	db db.DBTX
}

func NewAssignmentRepository(dbtx db.DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: dbtx}
}

func (r *AssignmentRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*membership.Assignment, error) {
	return r.list(ctx, "failed to list active assignments",
		`SELECT `+assignmentColumns+` FROM membership_assignments
		 WHERE user_id = $1 AND is_active
		 ORDER BY start_at DESC`, userID)
}

func (r *AssignmentRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*membership.Assignment, error) {
	return r.list(ctx, "failed to list expired assignments",
		`SELECT `+assignmentColumns+` FROM membership_assignments
		 WHERE is_active AND end_at < $1
		 ORDER BY user_id, id`, now)
}

func (r *AssignmentRepository) Create(ctx context.Context, a *membership.Assignment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO membership_assignments (`+assignmentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID(), a.UserID(), a.PlanID(), a.Price().Cents(), a.Start(), a.End(), a.IsActive(), a.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create assignment", err)
	}
	return nil
}

func (r *AssignmentRepository) Deactivate(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE membership_assignments SET is_active = FALSE WHERE id = ANY($1) AND is_active`, ids)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to deactivate assignments", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AssignmentRepository) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE membership_assignments SET is_active = FALSE WHERE user_id = $1 AND is_active`, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to deactivate user assignments", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AssignmentRepository) list(ctx context.Context, failMsg, query string, args ...any) ([]*membership.Assignment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	defer rows.Close()

	var out []*membership.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan assignment", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	return out, nil
}

func scanAssignment(row pgx.Row) (*membership.Assignment, error) {
	var a assignmentRow
	err := row.Scan(&a.ID, &a.UserID, &a.PlanID, &a.PriceCents, &a.StartAt, &a.EndAt, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a.toDomain()
}
