package api

import (
	"net/http"
	"time"

	"fitclub-core/internal/handler/httperr"
	"fitclub-core/internal/pkg/clock"
	"fitclub-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q     queries.AvailabilityQueries
	clock clock.Clock
	loc   *time.Location
}

func NewAvailabilityHandler(q queries.AvailabilityQueries, clock clock.Clock, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{q: q, clock: clock, loc: loc}
}

// @Summary Slot availability
// @Description Occupancy of every hourly slot of a day. Closed days keep their occupancy and carry closed=true.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day, YYYY-MM-DD (default today)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date := clock.Today(h.clock, h.loc)
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, v, h.loc)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
			return
		}
		date = parsed
	}

	view, err := h.q.GetAvailability(c.Request.Context(), date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}
