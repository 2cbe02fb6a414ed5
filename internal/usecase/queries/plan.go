package queries

import (
	"context"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/usecase/shared"
)

//go:generate mockgen -source=plan.go -destination=../../../tests/mock/queries/plan_mock.go -package=queriesmock

type PlanQueries interface {
	ListOffered(ctx context.Context) ([]*PlanView, error)
}

type planQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPlanQueries(uow shared.UnitOfWork) PlanQueries {
	return &planQueriesImpl{uow: uow}
}

func (q *planQueriesImpl) ListOffered(ctx context.Context) ([]*PlanView, error) {
	var plans []*membership.Plan
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		plans, err = tx.Plans().ListOffered(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]*PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, NewPlanView(p))
	}
	return views, nil
}
