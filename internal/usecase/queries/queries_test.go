//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/infra/cache"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/queries"
	"fitclub-core/tests/common/builder"
	"fitclub-core/tests/common/memstore"
	sharedmock "fitclub-core/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	now     = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	monday  = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
)

func TestEntitlementQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("valid assignment grants its plan's entitlements", func(t *testing.T) {
		store := memstore.New()
		plan := builder.NewPlanBuilder().WithEntitlements(true, false).BuildDomain()
		store.PutPlan(plan)
		u := builder.NewUserBuilder().BuildDomain()
		store.PutUser(u)
		a := builder.NewAssignmentBuilder(u.ID(), plan.ID(), now).BuildDomain()
		store.PutAssignment(a)
		q := queries.NewEntitlementQueries(store, clock.NewMockClock(now))

		ent, err := q.ResolveEntitlements(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, ent.AllowsRoutine)
		assert.False(t, ent.AllowsDiet)

		valid, err := q.HasValidMembership(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, valid)

		summary, err := q.GetSummary(ctx, u.ID())
		require.NoError(t, err)
		planID, end := plan.ID(), a.End()
		want := &queries.EntitlementView{
			AllowsRoutine:      true,
			HasValidMembership: true,
			PlanID:             &planID,
			PlanName:           plan.Name(),
			ValidUntil:         &end,
		}
		if diff := cmp.Diff(want, summary); diff != "" {
			t.Errorf("summary mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("latest starting valid assignment wins", func(t *testing.T) {
		store := memstore.New()
		basic := builder.NewPlanBuilder().WithEntitlements(true, false).BuildDomain()
		premium := builder.NewPlanBuilder().WithName("Premium").WithEntitlements(true, true).BuildDomain()
		store.PutPlan(basic)
		store.PutPlan(premium)
		u := builder.NewUserBuilder().BuildDomain()
		store.PutUser(u)
		store.PutAssignment(builder.NewAssignmentBuilder(u.ID(), basic.ID(), now).
			WithWindow(now.AddDate(0, 0, -10), now.AddDate(0, 0, 20)).BuildDomain())
		store.PutAssignment(builder.NewAssignmentBuilder(u.ID(), premium.ID(), now).
			WithWindow(now.AddDate(0, 0, -2), now.AddDate(0, 0, 28)).BuildDomain())

		ent, err := queries.NewEntitlementQueries(store, clock.NewMockClock(now)).ResolveEntitlements(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, ent.AllowsDiet)
	})

	t.Run("expired or inactive assignments grant nothing", func(t *testing.T) {
		store := memstore.New()
		plan := builder.NewPlanBuilder().WithEntitlements(true, true).BuildDomain()
		store.PutPlan(plan)
		u := builder.NewUserBuilder().BuildDomain()
		store.PutUser(u)
		store.PutAssignment(builder.NewAssignmentBuilder(u.ID(), plan.ID(), now).
			WithWindow(now.AddDate(0, 0, -30), now.Add(-time.Second)).BuildDomain())
		store.PutAssignment(builder.NewAssignmentBuilder(u.ID(), plan.ID(), now).AsInactive().BuildDomain())
		q := queries.NewEntitlementQueries(store, clock.NewMockClock(now))

		ent, err := q.ResolveEntitlements(ctx, u.ID())
		require.NoError(t, err)
		assert.False(t, ent.AllowsRoutine)
		assert.False(t, ent.AllowsDiet)

		valid, err := q.HasValidMembership(ctx, u.ID())
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("unknown user has no entitlements", func(t *testing.T) {
		q := queries.NewEntitlementQueries(memstore.New(), clock.NewMockClock(now))

		summary, err := q.GetSummary(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, &queries.EntitlementView{}, summary)
	})

	t.Run("missing plan keeps membership but grants no features", func(t *testing.T) {
		store := memstore.New()
		u := builder.NewUserBuilder().BuildDomain()
		store.PutUser(u)
		store.PutAssignment(builder.NewAssignmentBuilder(u.ID(), uuid.New(), now).BuildDomain())

		summary, err := queries.NewEntitlementQueries(store, clock.NewMockClock(now)).GetSummary(ctx, u.ID())
		require.NoError(t, err)
		assert.True(t, summary.HasValidMembership)
		assert.False(t, summary.AllowsRoutine)
		assert.Nil(t, summary.PlanID)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := memstore.New()
		store.FailNextWith(errors.New("boom"))

		_, err := queries.NewEntitlementQueries(store, clock.NewMockClock(now)).ResolveEntitlements(ctx, uuid.New())
		assert.Error(t, err)
	})
}

func TestAvailabilityQueries(t *testing.T) {
	ctx := context.Background()
	policy := reservation.DefaultPolicy()

	t.Run("computes hourly occupancy from stored reservations", func(t *testing.T) {
		store := memstore.New()
		userID := uuid.New()
		store.PutReservation(builder.NewReservationBuilder(userID, tuesday).At(9, 0).BuildDomain())
		store.PutReservation(builder.NewReservationBuilder(uuid.New(), tuesday).At(9, 30).BuildDomain())
		store.PutReservation(builder.NewReservationBuilder(uuid.New(), tuesday).At(9, 0).
			WithStatus(reservation.StatusCancelled).BuildDomain())

		view, err := queries.NewAvailabilityQueries(store, policy, cache.Noop{}, time.UTC).GetAvailability(ctx, tuesday)
		require.NoError(t, err)

		assert.Equal(t, "2026-03-03", view.Date)
		assert.False(t, view.Closed)
		require.Len(t, view.Slots, 15)
		assert.Equal(t, queries.SlotView{Hour: 8, Label: "08:00 - 09:00", Available: true, Occupied: 0, Capacity: 20}, view.Slots[0])
		assert.Equal(t, 2, view.Slots[1].Occupied)
		assert.Equal(t, 1, view.Slots[2].Occupied)
	})

	t.Run("closed day is flagged but keeps occupancy based availability", func(t *testing.T) {
		sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
		store := memstore.New()
		store.PutReservation(builder.NewReservationBuilder(uuid.New(), sunday).At(10, 0).BuildDomain())

		view, err := queries.NewAvailabilityQueries(store, policy, cache.Noop{}, time.UTC).GetAvailability(ctx, sunday)
		require.NoError(t, err)
		assert.True(t, view.Closed)
		require.Len(t, view.Slots, 15)
		for _, s := range view.Slots {
			assert.Equal(t, s.Occupied < s.Capacity, s.Available, s.Label)
		}
		assert.Equal(t, 1, view.Slots[2].Occupied)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := sharedmock.NewMockAvailabilityCache(ctrl)
		cached := policy.WithCapacity(1).Availability(monday, nil)
		mockCache.EXPECT().Get(gomock.Any(), monday).Return(cached, true, nil)

		store := memstore.New()
		store.FailNextWith(errors.New("storage must not be touched"))

		view, err := queries.NewAvailabilityQueries(store, policy, mockCache, time.UTC).GetAvailability(ctx, monday)
		require.NoError(t, err)
		assert.Equal(t, 1, view.Slots[0].Capacity)
	})

	t.Run("cache miss or cache error falls back to storage and refills", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockCache := sharedmock.NewMockAvailabilityCache(ctrl)
		gomock.InOrder(
			mockCache.EXPECT().Get(gomock.Any(), monday).Return(nil, false, errs.New("redis timeout")),
			mockCache.EXPECT().Set(gomock.Any(), monday, gomock.Len(15)).Return(errs.New("redis timeout")),
		)

		view, err := queries.NewAvailabilityQueries(memstore.New(), policy, mockCache, time.UTC).GetAvailability(ctx, monday)
		require.NoError(t, err)
		assert.Len(t, view.Slots, 15)
		assert.Equal(t, 20, view.Slots[0].Capacity)
	})
}

func TestReservationQueries_ListMine(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	userID := uuid.New()
	lastWeek := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)

	store.PutReservation(builder.NewReservationBuilder(userID, lastWeek).BuildDomain())
	store.PutReservation(builder.NewReservationBuilder(userID, tuesday).At(12, 0).BuildDomain())
	store.PutReservation(builder.NewReservationBuilder(userID, monday).At(8, 0).BuildDomain())
	store.PutReservation(builder.NewReservationBuilder(uuid.New(), monday).BuildDomain())

	q := queries.NewReservationQueries(store, clock.NewMockClock(now), time.UTC)

	t.Run("defaults to today onwards in start order", func(t *testing.T) {
		views, err := q.ListMine(ctx, userID, time.Time{})
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "2026-03-02", views[0].Date)
		assert.Equal(t, "08:00", views[0].StartTime)
		assert.Equal(t, "2026-03-03", views[1].Date)
	})

	t.Run("explicit from includes history", func(t *testing.T) {
		views, err := q.ListMine(ctx, userID, lastWeek)
		require.NoError(t, err)
		assert.Len(t, views, 3)
	})
}

func TestPlanQueries_ListOffered(t *testing.T) {
	store := memstore.New()
	store.PutPlan(builder.NewPlanBuilder().WithName("Premium").With(func(p *builder.PlanBuilder) { p.PriceCents = 4999 }).BuildDomain())
	store.PutPlan(builder.NewPlanBuilder().BuildDomain())
	store.PutPlan(builder.NewPlanBuilder().WithName("Legacy").Retired().BuildDomain())

	views, err := queries.NewPlanQueries(store).ListOffered(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"Basic", "Premium"}, names)
}

func TestUserQueries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	active := builder.NewUserBuilder().BuildDomain()
	inactive := builder.NewUserBuilder().AsInactive().BuildDomain()
	store.PutUser(active)
	store.PutUser(inactive)
	q := queries.NewUserQueries(store)

	view, err := q.GetActiveUser(ctx, active.ID())
	require.NoError(t, err)
	assert.Equal(t, "member", view.Role)

	_, err = q.GetActiveUser(ctx, inactive.ID())
	assert.True(t, errs.Is(err, queries.ErrUserInactive))

	view, err = q.GetCurrentUser(ctx, inactive.ID())
	require.NoError(t, err)
	assert.False(t, view.IsActive)

	_, err = q.GetCurrentUser(ctx, uuid.New())
	assert.True(t, errs.Is(err, queries.ErrUserNotFound))
}
