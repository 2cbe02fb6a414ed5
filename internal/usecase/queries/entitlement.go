package queries

import (
	"context"
	"log/slog"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=entitlement.go -destination=../../../tests/mock/queries/entitlement_mock.go -package=queriesmock

type EntitlementQueries interface {
	// ResolveEntitlements never fails for missing data; no valid membership yields no entitlements.
	ResolveEntitlements(ctx context.Context, userID uuid.UUID) (membership.Entitlements, error)
	HasValidMembership(ctx context.Context, userID uuid.UUID) (bool, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (*EntitlementView, error)
}

type entitlementQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewEntitlementQueries(uow shared.UnitOfWork, clock clock.Clock) EntitlementQueries {
	return &entitlementQueriesImpl{
		uow:   uow,
		clock: clock,
	}
}

func (q *entitlementQueriesImpl) ResolveEntitlements(ctx context.Context, userID uuid.UUID) (membership.Entitlements, error) {
	view, err := q.GetSummary(ctx, userID)
	if err != nil {
		return membership.NoEntitlements(), err
	}
	return membership.Entitlements{AllowsRoutine: view.AllowsRoutine, AllowsDiet: view.AllowsDiet}, nil
}

func (q *entitlementQueriesImpl) HasValidMembership(ctx context.Context, userID uuid.UUID) (bool, error) {
	var valid bool
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		assignments, err := tx.Assignments().ListActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		valid = membership.HasValid(assignments, q.clock.Now())
		return nil
	})
	return valid, err
}

func (q *entitlementQueriesImpl) GetSummary(ctx context.Context, userID uuid.UUID) (*EntitlementView, error) {
	view := &EntitlementView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		assignments, err := tx.Assignments().ListActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		current, ok := membership.SelectCurrent(assignments, q.clock.Now())
		if !ok {
			return nil
		}
		view.HasValidMembership = true

		plan, err := tx.Plans().FindByID(ctx, current.PlanID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("assignment references a missing plan",
					slog.String("assignment_id", current.ID().String()),
					slog.String("plan_id", current.PlanID().String()))
				return nil
			}
			return err
		}

		entitlements := plan.Entitlements()
		planID, end := plan.ID(), current.End()
		*view = EntitlementView{
			AllowsRoutine:      entitlements.AllowsRoutine,
			AllowsDiet:         entitlements.AllowsDiet,
			HasValidMembership: true,
			PlanID:             &planID,
			PlanName:           plan.Name(),
			ValidUntil:         &end,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
