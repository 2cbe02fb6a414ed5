package handler

import (
	"net/http"

	"fitclub-core/internal/domain/membership"
	"fitclub-core/internal/domain/user"
	"fitclub-core/internal/handler/api"
	"fitclub-core/internal/handler/middleware"
	"fitclub-core/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type handlers struct {
	Membership   *api.MembershipHandler
	Availability *api.AvailabilityHandler
	Reservation  *api.ReservationHandler
	Admin        *api.AdminHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	membershipHandler *api.MembershipHandler,
	availabilityHandler *api.AvailabilityHandler,
	reservationHandler *api.ReservationHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	gatherer prometheus.Gatherer,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers{
		Membership:   membershipHandler,
		Availability: availabilityHandler,
		Reservation:  reservationHandler,
		Admin:        adminHandler,
	}, authMiddleware, limiter, gatherer)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	h handlers,
	auth *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
	gatherer prometheus.Gatherer,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(auth.RequireAuth())

	// inactive users must still reach checkout
	addRoutes(apiGroup, []route{
		{Method: http.MethodGet, Path: "/memberships/plans", Handler: h.Membership.ListPlans},
		{Method: http.MethodPost, Path: "/memberships/checkout", Handler: h.Membership.Checkout, Mw: []gin.HandlerFunc{limiter.Middleware()}},
		{Method: http.MethodGet, Path: "/me/entitlements", Handler: h.Membership.Entitlements},
	})

	active := apiGroup.Group("")
	active.Use(auth.RequireActiveUser())
	{
		addRoutes(active, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.Get},
			{Method: http.MethodGet, Path: "/reservations", Handler: h.Reservation.ListMine},
			{Method: http.MethodPost, Path: "/reservations", Handler: h.Reservation.Create, Mw: []gin.HandlerFunc{limiter.Middleware()}},
			{Method: http.MethodPost, Path: "/reservations/:id/cancel", Handler: h.Reservation.Cancel, Mw: []gin.HandlerFunc{limiter.Middleware()}},
			{
				Method: http.MethodGet, Path: "/routines/access",
				Handler: h.Membership.FeatureAccess(membership.FeatureRoutine),
				Mw:      []gin.HandlerFunc{auth.RequireEntitlement(membership.FeatureRoutine)},
			},
			{
				Method: http.MethodGet, Path: "/diets/access",
				Handler: h.Membership.FeatureAccess(membership.FeatureDiet),
				Mw:      []gin.HandlerFunc{auth.RequireEntitlement(membership.FeatureDiet)},
			},
		})

		admin := active.Group("/admin")
		addRoutes(admin, []route{
			{
				Method: http.MethodPost, Path: "/reservations/:id/attendance",
				Handler: h.Admin.MarkAttendance,
				Mw:      []gin.HandlerFunc{auth.RequireRoleAtLeast(user.RoleTrainer)},
			},
			{
				Method: http.MethodPost, Path: "/sweeps",
				Handler: h.Admin.RunSweep,
				Mw:      []gin.HandlerFunc{auth.RequireRoleAtLeast(user.RoleAdmin)},
			},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
