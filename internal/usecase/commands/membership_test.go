//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/commands"
	"fitclub-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("checkout activates an inactive user for the plan duration", func(t *testing.T) {
		w := newWorld(t)
		u := builder.NewUserBuilder().AsInactive().BuildDomain()
		w.store.PutUser(u)

		a, err := commands.NewMembershipCommands(w.store, w.clock).Activate(ctx, u.ID(), w.plan.ID())
		require.NoError(t, err)

		assert.Equal(t, now, a.Start())
		assert.Equal(t, now.AddDate(0, 0, w.plan.DurationDays()), a.End())
		assert.Equal(t, w.plan.Price(), a.Price())
		assert.True(t, a.IsActive())
		assert.True(t, w.store.User(u.ID()).IsActive())
	})

	t.Run("new assignment supersedes the previous one", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		premium := builder.NewPlanBuilder().WithName("Premium").WithEntitlements(true, true).BuildDomain()
		w.store.PutPlan(premium)

		a, err := commands.NewMembershipCommands(w.store, w.clock).Activate(ctx, u.ID(), premium.ID())
		require.NoError(t, err)

		var active []uuid.UUID
		for _, x := range w.store.Assignments() {
			if x.UserID() == u.ID() && x.IsActive() {
				active = append(active, x.ID())
			}
		}
		assert.Equal(t, []uuid.UUID{a.ID()}, active)
	})

	t.Run("price is snapshotted at checkout", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		w.clock.Add(time.Hour)

		a, err := commands.NewMembershipCommands(w.store, w.clock).Activate(ctx, u.ID(), w.plan.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(2999), a.Price().Cents())
	})

	t.Run("retired plan", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		retired := builder.NewPlanBuilder().Retired().BuildDomain()
		w.store.PutPlan(retired)

		_, err := commands.NewMembershipCommands(w.store, w.clock).Activate(ctx, u.ID(), retired.ID())
		assert.True(t, errs.Is(err, commands.ErrPlanNotOffered))
	})

	t.Run("unknown plan", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)

		_, err := commands.NewMembershipCommands(w.store, w.clock).Activate(ctx, u.ID(), uuid.New())
		assert.True(t, errs.Is(err, commands.ErrPlanNotFound))
	})

	t.Run("unknown user", func(t *testing.T) {
		w := newWorld(t)

		_, err := commands.NewMembershipCommands(w.store, w.clock).Activate(ctx, uuid.New(), w.plan.ID())
		assert.True(t, errs.Is(err, commands.ErrUserNotFound))
		assert.Empty(t, w.store.Assignments())
	})
}
