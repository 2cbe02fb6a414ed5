//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"fitclub-core/internal/domain/reservation"
	"fitclub-core/internal/handler/api"
	reqdto "fitclub-core/internal/handler/dto/request"
	resdto "fitclub-core/internal/handler/dto/response"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/commands"
	"fitclub-core/internal/usecase/queries"
	"fitclub-core/tests/common/builder"
	"fitclub-core/tests/common/httptest"
	"fitclub-core/tests/common/testutil"
	commandsmock "fitclub-core/tests/mock/commands"
	queriesmock "fitclub-core/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// fakeAuth stands in for RequireAuth: any bearer header authenticates userID.
func fakeAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.userID = uuid.New()
	handler := api.NewReservationHandler(s.mockCommands, s.mockQueries, time.UTC)

	auth := fakeAuth(s.userID)
	s.router.POST("/reservations", auth, handler.Create)
	s.router.GET("/reservations", auth, handler.ListMine)
	s.router.POST("/reservations/:id/cancel", auth, handler.Cancel)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	reqBody := reqdto.CreateReservationRequest{Date: "2026-03-02", StartTime: "10:00"}
	created := builder.NewReservationBuilder(s.userID, monday).BuildDomain()

	s.Run("success: 201 with the confirmed reservation", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.userID, monday, reservation.TimeOfDay(600)).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal("confirmed", body.Status)
		s.Equal("10:00 - 11:00", body.Slot)
	})

	s.Run("error: 400 on malformed input", func() {
		cases := []testCaseReservation{
			{name: "missing date", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
			{name: "missing start_time", mutate: testutil.Field("start_time", nil), expectCode: http.StatusBadRequest},
			{name: "date not ISO", mutate: testutil.Field("date", "02/03/2026"), expectCode: http.StatusBadRequest},
			{name: "start_time with seconds", mutate: testutil.Field("start_time", "10:00:00"), expectCode: http.StatusBadRequest},
			{name: "start_time out of range", mutate: testutil.Field("start_time", "25:00"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 422 lists every violation", func() {
		ve := &reservation.ValidationErrors{}
		ve.Add("start_time", reservation.CodeOverlap, "overlaps your reservation at 10:00 - 11:00")
		ve.Add("start_time", reservation.CodeCapacity, "the requested session is full")
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, ve).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Reservation rejected")
		httptest.AssertViolationCodes(s.T(), rec, reservation.CodeOverlap, reservation.CodeCapacity)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"no valid membership", commands.ErrMembershipRequired, http.StatusForbidden, "Valid membership required"},
			{"storage failure", errs.Mark(errors.New("conn reset"), commands.ErrDatabaseOperationFailed), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestListMine() {
	view := queries.NewReservationView(builder.NewReservationBuilder(s.userID, monday).BuildDomain())

	s.Run("success: defaults from to zero", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.userID, time.Time{}).
			Return([]*queries.ReservationView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "bearer-token")

		var body struct {
			Reservations []resdto.ReservationResponse `json:"reservations"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Reservations, 1)
		s.Equal(view.ID, body.Reservations[0].ID)
	})

	s.Run("success: explicit from", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.userID, monday).
			Return([]*queries.ReservationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?from=2026-03-02", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on bad from", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?from=tomorrow", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid from date")
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/not-a-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation id")
	})

	s.Run("error: maps cancel outcomes", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"missing or foreign", errs.Mark(commands.ErrNothingToCancel, commands.ErrNotFoundOrPast), http.StatusNotFound, "Nothing to cancel"},
			{"already cancelled", errs.Mark(commands.ErrAlreadyCancelled, commands.ErrNotFoundOrPast), http.StatusConflict, "Reservation already cancelled"},
			{"already started", errs.Mark(commands.ErrCancelWindowClosed, commands.ErrNotFoundOrPast), http.StatusConflict, "Session already started"},
			{"storage failure", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.userID).Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
