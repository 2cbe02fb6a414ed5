package commands

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"time"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweepResult struct {
	ExpiredAssignments int
	DeactivatedUsers   int
	Elapsed            time.Duration
}

//go:generate mockgen -source=expiry.go -destination=../../../tests/mock/commands/expiry_mock.go -package=commandsmock

type ExpiryCommands interface {
	RunExpirySweepOnce(ctx context.Context) (*SweepResult, error)
}

type expiryCommandsImpl struct {
	uow     shared.UnitOfWork
	metrics shared.Metrics
	clock   clock.Clock
}

func NewExpiryCommands(uow shared.UnitOfWork, metrics shared.Metrics, clock clock.Clock) ExpiryCommands {
	return &expiryCommandsImpl{
		uow:     uow,
		metrics: metrics,
		clock:   clock,
	}
}

// RunExpirySweepOnce deactivates lapsed assignments and, for every affected user
// left without a valid assignment, the user. All changes commit together.
func (c *expiryCommandsImpl) RunExpirySweepOnce(ctx context.Context) (*SweepResult, error) {
	started := time.Now()
	result := &SweepResult{}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// reset in case the transaction is retried
		*result = SweepResult{}
		now := c.clock.Now()

		candidates, err := tx.Assignments().ListExpiredActive(ctx, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		var userIDs []uuid.UUID
		for _, a := range candidates {
			if !slices.Contains(userIDs, a.UserID()) {
				userIDs = append(userIDs, a.UserID())
			}
		}
		slices.SortFunc(userIDs, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

		for _, userID := range userIDs {
			expired, deactivated, err := c.sweepUser(ctx, tx, userID, now)
			if err != nil {
				return err
			}
			result.ExpiredAssignments += expired
			if deactivated {
				result.DeactivatedUsers++
			}
		}
		return nil
	})
	if err != nil {
		c.metrics.SweepFailed()
		return nil, err
	}

	result.Elapsed = time.Since(started)
	c.metrics.SweepCompleted(result.ExpiredAssignments, result.DeactivatedUsers, result.Elapsed)
	slog.Info("expiry sweep completed",
		slog.Int("assignments_expired", result.ExpiredAssignments),
		slog.Int("users_deactivated", result.DeactivatedUsers),
		slog.Duration("elapsed", result.Elapsed))
	return result, nil
}

// sweepUser takes the user row lock before touching assignments, the same order
// Activate uses, then re-reads the user's assignments so a checkout committed
// since the candidate scan is honoured. The account is disabled only when no
// valid assignment remains.
func (c *expiryCommandsImpl) sweepUser(ctx context.Context, tx shared.Tx, userID uuid.UUID, now time.Time) (int, bool, error) {
	u, err := tx.Users().FindByIDForUpdate(ctx, userID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return 0, false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if u == nil {
		slog.Warn("expired assignment references a missing user", slog.String("user_id", userID.String()))
	}

	active, err := tx.Assignments().ListActiveByUser(ctx, userID)
	if err != nil {
		return 0, false, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var ids []uuid.UUID
	for _, a := range active {
		if a.Expire(now) == nil {
			ids = append(ids, a.ID())
		}
	}
	if len(ids) == 0 {
		return 0, false, nil
	}

	n, err := tx.Assignments().Deactivate(ctx, ids)
	if err != nil {
		return 0, false, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if u == nil || !u.IsActive() || membership.HasValid(active, now) {
		return int(n), false, nil
	}
	if err := tx.Users().SetActive(ctx, userID, false); err != nil {
		return int(n), false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return int(n), true, nil
}
