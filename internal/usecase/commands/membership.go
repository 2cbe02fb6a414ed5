package commands

import (
	"context"
	"log/slog"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=membership.go -destination=../../../tests/mock/commands/membership_mock.go -package=commandsmock

type MembershipCommands interface {
	Activate(ctx context.Context, userID, planID uuid.UUID) (*membership.Assignment, error)
}

type membershipCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMembershipCommands(uow shared.UnitOfWork, clock clock.Clock) MembershipCommands {
	return &membershipCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

// Activate is the outcome of a successful checkout. Prior active assignments are
// superseded first so at most one valid assignment exists per user.
func (c *membershipCommandsImpl) Activate(ctx context.Context, userID, planID uuid.UUID) (*membership.Assignment, error) {
	var created *membership.Assignment
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByIDForUpdate(ctx, userID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		plan, err := tx.Plans().FindByID(ctx, planID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPlanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !plan.IsOffered() {
			return ErrPlanNotOffered
		}

		if _, err := tx.Assignments().DeactivateAllForUser(ctx, userID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		a, err := membership.NewAssignment(userID, plan, c.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Assignments().Create(ctx, a); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Users().SetActive(ctx, userID, true); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("membership activated",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", planID.String()),
		slog.Time("ends_at", created.End()))
	return created, nil
}
