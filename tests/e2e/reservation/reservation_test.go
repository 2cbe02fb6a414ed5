//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/handler/dto/request"
	"fitclub-core/internal/handler/dto/response"
	"fitclub-core/internal/usecase/queries"
	"fitclub-core/tests/common/authtest"
	"fitclub-core/tests/common/dbtest"
	"fitclub-core/tests/common/httptest"
	"fitclub-core/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	cancelURL       = "/api/reservations/%s/cancel"
	availabilityURL = "/api/availability?date=%s"
	attendanceURL   = "/api/admin/reservations/%s/attendance"
)

type ReservationSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *ReservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT.Secret)
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// nextWeekday returns the first wd strictly after today, in UTC.
func nextWeekday(wd time.Weekday) time.Time {
	d := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// member seeds an active user with a valid plan and returns its id and token.
func (s *ReservationSuite) member(routine, diet bool) (uuid.UUID, string) {
	t := s.T()
	userID := dbtest.CreateTestUser(t, s.DB, string(user.RoleMember), true)
	planID := dbtest.CreateTestPlan(t, s.DB, "Plan "+userID.String()[:8], 30, routine, diet)
	now := time.Now()
	dbtest.CreateTestAssignment(t, s.DB, userID, planID, now.Add(-24*time.Hour), now.AddDate(0, 0, 29), true)
	return userID, s.jwt.GenerateToken(t, userID, user.RoleMember)
}

func (s *ReservationSuite) TestCreateReservation() {
	monday := nextWeekday(time.Monday)
	day := monday.Format(time.DateOnly)

	s.Run("Normal case: member books a confirmed session", func() {
		t := s.T()
		_, token := s.member(true, false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{Date: day, StartTime: "10:00"}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var got response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))

		want := &response.ReservationResponse{
			Date:      day,
			StartTime: "10:00",
			EndTime:   "11:00",
			Slot:      "10:00 - 11:00",
			Status:    "confirmed",
		}
		opts := cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "CreatedAt")
		if diff := cmp.Diff(want, &got, opts); diff != "" {
			t.Errorf("reservation mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: overlapping own booking is rejected", func() {
		t := s.T()
		_, token := s.member(true, false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{Date: day, StartTime: "10:00"}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{Date: day, StartTime: "10:30"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Reservation rejected")
		httptest.AssertViolationCodes(t, w, reservation.CodeOverlap)
	})

	s.Run("Error case: Sunday is closed", func() {
		t := s.T()
		_, token := s.member(true, false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{Date: nextWeekday(time.Sunday).Format(time.DateOnly), StartTime: "10:00"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Reservation rejected")
		httptest.AssertViolationCodes(t, w, reservation.CodeClosedDay)
	})

	s.Run("Error case: expired membership cannot book", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, string(user.RoleMember), true)
		planID := dbtest.CreateTestPlan(t, s.DB, "Lapsed", 30, true, false)
		now := time.Now()
		dbtest.CreateTestAssignment(t, s.DB, userID, planID, now.AddDate(0, 0, -31), now.Add(-time.Hour), true)
		token := s.jwt.GenerateToken(t, userID, user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{Date: day, StartTime: "10:00"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Valid membership required")
	})

	s.Run("Error case: inactive account is refused before booking", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, string(user.RoleMember), false)
		token := s.jwt.GenerateToken(t, userID, user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{Date: day, StartTime: "10:00"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Account is inactive")
	})
}

func (s *ReservationSuite) TestCapacity() {
	tuesday := nextWeekday(time.Tuesday)
	day := tuesday.Format(time.DateOnly)

	s.Run("Normal case: the 21st booking of a slot is rejected", func() {
		t := s.T()
		for range 20 {
			userID := dbtest.CreateTestUser(t, s.DB, string(user.RoleMember), true)
			dbtest.CreateTestReservation(t, s.DB, userID, tuesday, "09:00", "confirmed")
		}
		_, token := s.member(true, false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{Date: day, StartTime: "09:00"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Reservation rejected")
		httptest.AssertViolationCodes(t, w, reservation.CodeCapacity)

		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availabilityURL, day), nil, token)
		require.Equal(t, http.StatusOK, aw.Code)
		var view queries.AvailabilityView
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &view))
		require.Equal(t, 9, view.Slots[1].Hour)
		require.Equal(t, 20, view.Slots[1].Occupied)
		require.False(t, view.Slots[1].Available)
	})

	s.Run("Normal case: concurrent requests for the last place admit exactly one", func() {
		t := s.T()
		for range 19 {
			userID := dbtest.CreateTestUser(t, s.DB, string(user.RoleMember), true)
			dbtest.CreateTestReservation(t, s.DB, userID, tuesday, "09:00", "confirmed")
		}
		tokens := make([]string, 6)
		for i := range tokens {
			_, tokens[i] = s.member(true, false)
		}

		var wg sync.WaitGroup
		codes := make([]int, len(tokens))
		for i, token := range tokens {
			wg.Add(1)
			go func(i int, token string) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
					request.CreateReservationRequest{Date: day, StartTime: "09:00"}, token)
				codes[i] = w.Code
			}(i, token)
		}
		wg.Wait()

		created := 0
		for _, code := range codes {
			if code == http.StatusCreated {
				created++
			} else {
				require.Equal(t, http.StatusUnprocessableEntity, code)
			}
		}
		require.Equal(t, 1, created)

		var occupied int
		require.NoError(t, s.DB.QueryRow(t.Context(),
			"SELECT count(*) FROM reservations WHERE date = $1 AND start_time = '09:00' AND status <> 'cancelled'",
			tuesday).Scan(&occupied))
		require.Equal(t, 20, occupied)
	})
}

func (s *ReservationSuite) TestCancelReservation() {
	monday := nextWeekday(time.Monday)

	s.Run("Normal case: owner cancels and the place is freed", func() {
		t := s.T()
		userID, token := s.member(true, false)
		id := dbtest.CreateTestReservation(t, s.DB, userID, monday, "12:00", "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, id), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, id), nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Reservation already cancelled")

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, token)
		require.Equal(t, http.StatusOK, lw.Code)
		var body struct {
			Reservations []response.ReservationResponse `json:"reservations"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &body))
		require.Len(t, body.Reservations, 1)
		require.Equal(t, "cancelled", body.Reservations[0].Status)
	})

	s.Run("Error case: another member's reservation is nothing to cancel", func() {
		t := s.T()
		ownerID, _ := s.member(true, false)
		_, otherToken := s.member(true, false)
		id := dbtest.CreateTestReservation(t, s.DB, ownerID, monday, "12:00", "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, id), nil, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Nothing to cancel")
	})
}

func (s *ReservationSuite) TestMarkAttendance() {
	s.Run("Normal case: trainer completes a past session", func() {
		t := s.T()
		memberID, _ := s.member(true, false)
		yesterday := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -1)
		id := dbtest.CreateTestReservation(t, s.DB, memberID, yesterday, "10:00", "confirmed")
		trainerID := dbtest.CreateTestUser(t, s.DB, string(user.RoleTrainer), true)
		token := s.jwt.GenerateToken(t, trainerID, user.RoleTrainer)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(attendanceURL, id),
			map[string]any{"attended": true, "notes": "great session"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.Equal(t, "completed", got.Status)
		require.NotNil(t, got.Attended)
		require.True(t, *got.Attended)
	})

	s.Run("Error case: members cannot reach the admin routes", func() {
		t := s.T()
		_, token := s.member(true, false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(attendanceURL, uuid.New()),
			map[string]any{"attended": true}, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}
