package queries

import (
	"context"

	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/infra"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.ErrUserNotFound
	ErrUserInactive = errs.ErrUserInactive
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user_mock.go -package=queriesmock

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
	// GetActiveUser fails with ErrUserInactive once the account lost club access.
	GetActiveUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	var u *user.User
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		u, err = tx.Users().FindByID(ctx, userID)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &AuthorizedUserView{
		ID:       u.ID(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}, nil
}

func (q *userQueriesImpl) GetActiveUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	return view, nil
}
