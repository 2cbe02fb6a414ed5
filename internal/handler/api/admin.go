package api

import (
	"net/http"

	"fitclub-core/internal/domain/reservation"
	reqdto "fitclub-core/internal/handler/dto/request"
	resdto "fitclub-core/internal/handler/dto/response"
	"fitclub-core/internal/handler/httperr"
	"fitclub-core/internal/handler/middleware"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	reservations commands.ReservationCommands
	expiry       commands.ExpiryCommands
}

func NewAdminHandler(reservations commands.ReservationCommands, expiry commands.ExpiryCommands) *AdminHandler {
	return &AdminHandler{reservations: reservations, expiry: expiry}
}

// @Summary Mark attendance
// @Description Staff record whether the member attended a started session
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AttendanceRequest true "Attendance"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/reservations/{id}/attendance [post]
func (h *AdminHandler) MarkAttendance(c *gin.Context) {
	staffID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation id", nil)
		return
	}
	var req reqdto.AttendanceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	marked, err := h.reservations.MarkAttendance(c.Request.Context(), commands.MarkAttendanceInput{
		ReservationID: id,
		StaffID:       staffID,
		Attended:      *req.Attended,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
		case errs.Is(err, commands.ErrReservationMissing):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errs.Is(err, reservation.ErrSessionNotStarted):
			httperr.AbortWithError(c, http.StatusConflict, err, "Session has not started yet", nil)
		case errs.Is(err, reservation.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation cannot be marked", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(marked))
}

// @Summary Run expiry sweep
// @Description Expire lapsed memberships now instead of waiting for the next scheduled run
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 500 {object} httperr.Response
// @Router /api/admin/sweeps [post]
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result, err := h.expiry.RunExpirySweepOnce(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Sweep failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
