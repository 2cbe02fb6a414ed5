package repository

import (
	"context"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/infra/db"
	"fitclub-core/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const planColumns = `id, name, price_cents, duration_days, allows_routine, allows_diet, is_active, created_at, updated_at`

type PlanRepository struct {
	db db.DBTX
}

func NewPlanRepository(dbtx db.DBTX) *PlanRepository {
	return &PlanRepository{db: dbtx}
}

func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Plan, error) {
	p, err := scanPlan(r.db.QueryRow(ctx, `SELECT `+planColumns+` FROM membership_plans WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("plan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find plan by ID", err)
	}
	return p, nil
}

func (r *PlanRepository) ListOffered(ctx context.Context) ([]*membership.Plan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+planColumns+` FROM membership_plans WHERE is_active ORDER BY price_cents, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list offered plans", err)
	}
	defer rows.Close()

	var plans []*membership.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan plan", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate plans", err)
	}
	return plans, nil
}

func scanPlan(row pgx.Row) (*membership.Plan, error) {
	var p planRow
	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.DurationDays,
		&p.AllowsRoutine, &p.AllowsDiet, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p.toDomain()
}
