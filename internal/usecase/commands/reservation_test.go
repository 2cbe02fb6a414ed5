//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/infra/cache"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/commands"
	"fitclub-core/internal/usecase/queries"
	"fitclub-core/internal/usecase/shared"
	"fitclub-core/tests/common/builder"
	"fitclub-core/tests/common/memstore"
	sharedmock "fitclub-core/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (w *world) reservationCommands() commands.ReservationCommands {
	return commands.NewReservationCommands(w.store, reservation.DefaultPolicy(), cache.Noop{}, w.metrics, w.clock, time.UTC)
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("valid member books Monday 10:00 as confirmed", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)

		r, err := w.reservationCommands().Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		assert.Equal(t, "10:00 - 11:00", r.Slot().Label())
		assert.Equal(t, now, r.CreatedAt())
		stored := w.store.Reservation(r.ID())
		require.NotNil(t, stored)
		assert.Equal(t, reservation.StatusConfirmed, stored.Status())
		assert.Equal(t, 1, w.metrics.booked(shared.OutcomeBooked))
	})

	t.Run("date lock is taken before any read", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)

		_, err := w.reservationCommands().Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)

		assert.Equal(t, []string{
			memstore.TraceLockDate,
			memstore.TraceListAssignments,
			memstore.TraceListReservations,
		}, w.store.LastTrace)
	})

	t.Run("non-member still takes the date lock first", func(t *testing.T) {
		w := newWorld(t)
		u := w.userWithRole(t, user.RoleMember)

		_, err := w.reservationCommands().Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.True(t, errs.Is(err, commands.ErrMembershipRequired))
		assert.Equal(t, []string{memstore.TraceLockDate, memstore.TraceListAssignments}, w.store.LastTrace)
	})

	t.Run("overlapping own booking is rejected and the first is untouched", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		cmds := w.reservationCommands()

		first, err := cmds.Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)

		_, err = cmds.Create(ctx, u.ID(), monday, tod(t, "10:30"))
		require.ErrorIs(t, err, reservation.ErrValidation)
		assert.Equal(t, []string{reservation.CodeOverlap}, violationCodes(t, err))

		assert.Len(t, w.store.Reservations(), 1)
		assert.Equal(t, reservation.StatusConfirmed, w.store.Reservation(first.ID()).Status())
		assert.Equal(t, 1, w.metrics.booked(shared.OutcomeRejected))
	})

	t.Run("twenty first booking of a slot is rejected for capacity", func(t *testing.T) {
		w := newWorld(t)
		cmds := w.reservationCommands()
		for range reservation.DefaultCapacity {
			u := w.member(t)
			_, err := cmds.Create(ctx, u.ID(), tuesday, tod(t, "09:00"))
			require.NoError(t, err)
		}

		late := w.member(t)
		_, err := cmds.Create(ctx, late.ID(), tuesday, tod(t, "09:00"))
		require.ErrorIs(t, err, reservation.ErrValidation)
		assert.Equal(t, []string{reservation.CodeCapacity}, violationCodes(t, err))

		view, err := queries.NewAvailabilityQueries(w.store, reservation.DefaultPolicy(), cache.Noop{}, time.UTC).
			GetAvailability(ctx, tuesday)
		require.NoError(t, err)
		nine := view.Slots[1]
		assert.Equal(t, 9, nine.Hour)
		assert.Equal(t, 20, nine.Occupied)
		assert.False(t, nine.Available)
	})

	t.Run("Sunday is rejected for members", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)

		_, err := w.reservationCommands().Create(ctx, u.ID(), nextSunday, tod(t, "10:00"))
		assert.Contains(t, violationCodes(t, err), reservation.CodeClosedDay)
	})

	t.Run("Sunday is rejected for non-members too", func(t *testing.T) {
		w := newWorld(t)
		u := w.userWithRole(t, user.RoleMember)

		_, err := w.reservationCommands().Create(ctx, u.ID(), nextSunday, tod(t, "10:00"))
		require.Error(t, err)
		assert.Empty(t, w.store.Reservations())
	})

	t.Run("user without a valid membership is refused before booking rules", func(t *testing.T) {
		w := newWorld(t)
		u := w.userWithRole(t, user.RoleMember)
		expired := builder.NewAssignmentBuilder(u.ID(), w.plan.ID(), now).
			WithWindow(now.AddDate(0, 0, -31), now.Add(-time.Hour)).BuildDomain()
		w.store.PutAssignment(expired)

		_, err := w.reservationCommands().Create(ctx, u.ID(), monday, tod(t, "07:00"))
		require.True(t, errs.Is(err, commands.ErrMembershipRequired))
		assert.False(t, errors.Is(err, reservation.ErrValidation))
		assert.Equal(t, 1, w.metrics.booked(shared.OutcomeNoMember))
	})

	t.Run("all broken rules are reported together", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)

		_, err := w.reservationCommands().Create(ctx, u.ID(), now.AddDate(0, 0, -7), tod(t, "23:00"))
		codes := violationCodes(t, err)
		assert.Contains(t, codes, reservation.CodePastDate)
		assert.Contains(t, codes, reservation.CodeClosedDay)
		assert.Contains(t, codes, reservation.CodeOutOfHours)
	})

	t.Run("storage failure is surfaced and counted", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		w.store.FailNextWith(errors.New("connection reset"))

		_, err := w.reservationCommands().Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.Error(t, err)
		assert.Equal(t, 1, w.metrics.booked(shared.OutcomeStorageFail))
		assert.Empty(t, w.store.Reservations())
	})

	t.Run("committed booking invalidates the cached day", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		ctrl := gomock.NewController(t)
		mockCache := sharedmock.NewMockAvailabilityCache(ctrl)
		mockCache.EXPECT().Invalidate(gomock.Any(), monday).Return(errors.New("redis down")).Times(1)

		cmds := commands.NewReservationCommands(w.store, reservation.DefaultPolicy(), mockCache, w.metrics, w.clock, time.UTC)
		_, err := cmds.Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err, "cache failures never fail a committed booking")
	})
}

func TestCreateReservation_ConcurrentLastPlace(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	cmds := w.reservationCommands()

	for range reservation.DefaultCapacity - 1 {
		u := w.member(t)
		_, err := cmds.Create(ctx, u.ID(), tuesday, tod(t, "09:00"))
		require.NoError(t, err)
	}

	const contenders = 8
	ids := make([]uuid.UUID, contenders)
	for i := range ids {
		ids[i] = w.member(t).ID()
	}

	nine := tod(t, "09:00")
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if _, err := cmds.Create(ctx, id, tuesday, nine); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Len(t, w.store.Reservations(), reservation.DefaultCapacity)
	assert.Equal(t, contenders-1, w.metrics.booked(shared.OutcomeRejected))
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels a future session", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		cmds := w.reservationCommands()
		r, err := cmds.Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)

		require.NoError(t, cmds.Cancel(ctx, r.ID(), u.ID()))
		assert.Equal(t, reservation.StatusCancelled, w.store.Reservation(r.ID()).Status())
		assert.Equal(t, 1, w.metrics.cancelled)

		// the freed place can be booked again
		_, err = cmds.Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)
	})

	t.Run("unknown or foreign reservation is nothing to cancel", func(t *testing.T) {
		w := newWorld(t)
		owner := w.member(t)
		other := w.member(t)
		cmds := w.reservationCommands()
		r, err := cmds.Create(ctx, owner.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)

		for _, tc := range []struct {
			name          string
			reservationID uuid.UUID
			userID        uuid.UUID
		}{
			{"missing", uuid.New(), owner.ID()},
			{"not owned", r.ID(), other.ID()},
		} {
			err := cmds.Cancel(ctx, tc.reservationID, tc.userID)
			assert.True(t, errs.Is(err, commands.ErrNothingToCancel), tc.name)
			assert.True(t, errs.Is(err, commands.ErrNotFoundOrPast), tc.name)
		}
		assert.Equal(t, reservation.StatusConfirmed, w.store.Reservation(r.ID()).Status())
	})

	t.Run("started session cannot be cancelled", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		cmds := w.reservationCommands()
		r, err := cmds.Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)

		w.clock.Set(time.Date(2026, 3, 2, 10, 1, 0, 0, time.UTC))
		err = cmds.Cancel(ctx, r.ID(), u.ID())
		assert.True(t, errs.Is(err, commands.ErrCancelWindowClosed))
		assert.True(t, errs.Is(err, commands.ErrNotFoundOrPast))
		assert.Equal(t, reservation.StatusConfirmed, w.store.Reservation(r.ID()).Status())
	})

	t.Run("second cancel reports already cancelled", func(t *testing.T) {
		w := newWorld(t)
		u := w.member(t)
		cmds := w.reservationCommands()
		r, err := cmds.Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)
		require.NoError(t, cmds.Cancel(ctx, r.ID(), u.ID()))

		err = cmds.Cancel(ctx, r.ID(), u.ID())
		assert.True(t, errs.Is(err, commands.ErrAlreadyCancelled))
		assert.Equal(t, 1, w.metrics.cancelled)
	})
}

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*world, commands.ReservationCommands, *reservation.Reservation) {
		w := newWorld(t)
		u := w.member(t)
		cmds := w.reservationCommands()
		r, err := cmds.Create(ctx, u.ID(), monday, tod(t, "10:00"))
		require.NoError(t, err)
		return w, cmds, r
	}

	t.Run("trainer completes a started session", func(t *testing.T) {
		w, cmds, r := setup(t)
		trainer := w.userWithRole(t, user.RoleTrainer)
		w.clock.Set(time.Date(2026, 3, 2, 11, 5, 0, 0, time.UTC))

		marked, err := cmds.MarkAttendance(ctx, commands.MarkAttendanceInput{
			ReservationID: r.ID(), StaffID: trainer.ID(), Attended: true, Notes: "on time",
		})
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCompleted, marked.Status())
		require.NotNil(t, marked.Attendance())
		assert.Equal(t, trainer.ID(), marked.Attendance().MarkedBy)
		assert.Equal(t, "on time", w.store.Reservation(r.ID()).Attendance().Notes)
		assert.Equal(t, 1, w.metrics.attendance)
	})

	t.Run("member cannot mark attendance", func(t *testing.T) {
		w, cmds, r := setup(t)
		w.clock.Set(time.Date(2026, 3, 2, 11, 5, 0, 0, time.UTC))

		_, err := cmds.MarkAttendance(ctx, commands.MarkAttendanceInput{
			ReservationID: r.ID(), StaffID: r.UserID(), Attended: true,
		})
		assert.True(t, errs.Is(err, commands.ErrForbidden))
	})

	t.Run("future session cannot be marked", func(t *testing.T) {
		w, cmds, r := setup(t)
		admin := w.userWithRole(t, user.RoleAdmin)

		_, err := cmds.MarkAttendance(ctx, commands.MarkAttendanceInput{
			ReservationID: r.ID(), StaffID: admin.ID(), Attended: false,
		})
		assert.ErrorIs(t, err, reservation.ErrSessionNotStarted)
	})

	t.Run("cancelled session cannot be marked", func(t *testing.T) {
		w, cmds, r := setup(t)
		admin := w.userWithRole(t, user.RoleAdmin)
		require.NoError(t, cmds.Cancel(ctx, r.ID(), r.UserID()))
		w.clock.Set(time.Date(2026, 3, 2, 11, 5, 0, 0, time.UTC))

		_, err := cmds.MarkAttendance(ctx, commands.MarkAttendanceInput{
			ReservationID: r.ID(), StaffID: admin.ID(), Attended: true,
		})
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		w, cmds, _ := setup(t)
		admin := w.userWithRole(t, user.RoleAdmin)

		_, err := cmds.MarkAttendance(ctx, commands.MarkAttendanceInput{
			ReservationID: uuid.New(), StaffID: admin.ID(), Attended: true,
		})
		assert.True(t, errs.Is(err, commands.ErrReservationMissing))
	})
}
