package repository

import (
	"context"
	"time"

	"fitclub-core/internal/infra"
	"fitclub-core/internal/infra/db"
)

// DateLocker takes a transaction-scoped advisory lock per calendar date.
type DateLocker struct {
	db db.DBTX
}

func NewDateLocker(dbtx db.DBTX) *DateLocker {
	return &DateLocker{db: dbtx}
}

func (l *DateLocker) LockDate(ctx context.Context, date time.Time) error {
	_, err := l.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, LockKey(date))
	if err != nil {
		return infra.WrapRepoErr("failed to lock reservation date", err)
	}
	return nil
}

func LockKey(date time.Time) string {
	return "reservations:" + date.Format(time.DateOnly)
}
