package api

import (
	"errors"
	"net/http"
	"time"

	"fitclub-core/internal/domain/reservation"
	reqdto "fitclub-core/internal/handler/dto/request"
	resdto "fitclub-core/internal/handler/dto/response"
	"fitclub-core/internal/handler/httperr"
	"fitclub-core/internal/handler/middleware"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/commands"
	"fitclub-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
	loc  *time.Location
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries, loc *time.Location) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, loc: loc}
}

// @Summary Create reservation
// @Description Book a one-hour session. All broken booking rules are reported together.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	date, start, err := req.ToBooking(h.loc)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date or start time", nil)
		return
	}

	created, err := h.cmds.Create(c.Request.Context(), userID, date, start)
	if err != nil {
		var ve *reservation.ValidationErrors
		switch {
		case errors.As(err, &ve):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation rejected",
				gin.H{"violations": resdto.FromViolations(ve)})
		case errs.Is(err, commands.ErrMembershipRequired):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Valid membership required",
				gin.H{"hint": "activate a membership plan to book sessions"})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(created))
}

// @Summary List my reservations
// @Description Reservations of the current user dated from the given day (default today)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param from query string false "First date, YYYY-MM-DD"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var from time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, v, h.loc)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date", nil)
			return
		}
		from = parsed
	}

	views, err := h.q.ListMine(c.Request.Context(), userID, from)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": resdto.FromReservationViews(views)})
}

// @Summary Cancel reservation
// @Description Cancel one of the current user's reservations before it starts
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), id, userID); err != nil {
		switch {
		case errs.Is(err, commands.ErrNothingToCancel):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Nothing to cancel", nil)
		case errs.Is(err, commands.ErrAlreadyCancelled):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation already cancelled", nil)
		case errs.Is(err, commands.ErrCancelWindowClosed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Session already started", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
