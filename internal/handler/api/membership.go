package api

import (
	"net/http"

	"fitclub-core/internal/domain/membership"
	reqdto "fitclub-core/internal/handler/dto/request"
	resdto "fitclub-core/internal/handler/dto/response"
	"fitclub-core/internal/handler/httperr"
	"fitclub-core/internal/handler/middleware"
	"fitclub-core/internal/pkg/errs"
	"fitclub-core/internal/usecase/commands"
	"fitclub-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	cmds         commands.MembershipCommands
	plans        queries.PlanQueries
	entitlements queries.EntitlementQueries
}

func NewMembershipHandler(
	cmds commands.MembershipCommands,
	plans queries.PlanQueries,
	entitlements queries.EntitlementQueries,
) *MembershipHandler {
	return &MembershipHandler{cmds: cmds, plans: plans, entitlements: entitlements}
}

// @Summary List membership plans
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.PlanView
// @Router /api/memberships/plans [get]
func (h *MembershipHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListOffered(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// @Summary Checkout a membership plan
// @Description Activates the plan for the current user, superseding any active membership
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.AssignmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/memberships/checkout [post]
func (h *MembershipHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	assignment, err := h.cmds.Activate(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrPlanNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Plan not found", nil)
		case errs.Is(err, commands.ErrPlanNotOffered):
			httperr.AbortWithError(c, http.StatusConflict, err, "Plan is no longer offered", nil)
		case errs.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAssignment(assignment))
}

// @Summary My entitlements
// @Description Features granted by the current membership. No valid membership grants nothing.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.EntitlementView
// @Router /api/me/entitlements [get]
func (h *MembershipHandler) Entitlements(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.Abort(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	view, err := h.entitlements.GetSummary(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// FeatureAccess answers content services asking whether a feature is unlocked.
// Routes using it sit behind RequireEntitlement, so reaching it means yes.
func (h *MembershipHandler) FeatureAccess(feature membership.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"feature": string(feature), "allowed": true})
	}
}
