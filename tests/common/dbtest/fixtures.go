//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, role string, active bool) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO users (id, role, is_active) VALUES ($1, $2, $3)",
		userID, role, active)
	require.NoError(t, err)
	return userID
}

func CreateTestPlan(t *testing.T, db DBLike, name string, durationDays int, routine, diet bool) uuid.UUID {
	t.Helper()

	planID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO membership_plans (id, name, price_cents, duration_days, allows_routine, allows_diet, is_active)
		 VALUES ($1, $2, 2999, $3, $4, $5, true)`,
		planID, name, durationDays, routine, diet)
	require.NoError(t, err)
	return planID
}

func CreateTestAssignment(t *testing.T, db DBLike, userID, planID uuid.UUID, start, end time.Time, active bool) uuid.UUID {
	t.Helper()

	assignmentID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO membership_assignments (id, user_id, plan_id, price_cents, start_at, end_at, is_active, created_at)
		 VALUES ($1, $2, $3, 2999, $4, $5, $6, $4)`,
		assignmentID, userID, planID, start, end, active)
	require.NoError(t, err)
	return assignmentID
}

// CreateTestReservation inserts a one-hour session; start is "HH:MM".
func CreateTestReservation(t *testing.T, db DBLike, userID uuid.UUID, date time.Time, start, status string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO reservations (id, user_id, date, start_time, end_time, status)
		 VALUES ($1, $2, $3, $4::time, $4::time + interval '1 hour', $5)`,
		reservationID, userID, date.Format(time.DateOnly), start, status)
	require.NoError(t, err)
	return reservationID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table except the migration bookkeeping.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
