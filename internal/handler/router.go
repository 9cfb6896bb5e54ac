package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ekicare/internal/domain/user"
	"ekicare/internal/handler/api"
	"ekicare/internal/handler/middleware"
	"ekicare/internal/handler/validation"
	"ekicare/internal/pkg/clock"
	"ekicare/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Appointments  *api.AppointmentHandler
	Availability  *api.AvailabilityHandler
	Relationships *api.RelationshipHandler
	Distance      *api.DistanceHandler
	Maintenance   *api.MaintenanceHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) error {
	if err := validation.Register(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, h, authMiddleware)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requirePro := authMiddleware.RequireRole(user.RolePro)
	requireOwner := authMiddleware.RequireRole(user.RoleOwner)

	apiGroup := engine.Group("/api")
	{
		appointments := apiGroup.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Appointments.Create, Mw: []gin.HandlerFunc{requireOwner}},
				{Method: http.MethodGet, Path: "", Handler: h.Appointments.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Appointments.Get},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Appointments.Accept},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Appointments.Cancel},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Appointments.Reschedule},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Appointments.Complete, Mw: []gin.HandlerFunc{requirePro}},
				{Method: http.MethodPut, Path: "/:id/report", Handler: h.Appointments.AttachReport, Mw: []gin.HandlerFunc{requirePro}},
			})
		}

		professionals := apiGroup.Group("/professionals")
		professionals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(professionals, []route{
				{Method: http.MethodGet, Path: "/me/clients", Handler: h.Relationships.ListClients, Mw: []gin.HandlerFunc{requirePro}},
				{Method: http.MethodGet, Path: "/:id/booked-slots", Handler: h.Availability.BookedSlots},
			})
		}

		distance := apiGroup.Group("/distance")
		distance.Use(authMiddleware.RequireAuth())
		{
			addRoutes(distance, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Distance.Get},
			})
		}

		internal := apiGroup.Group("/internal")
		internal.Use(middleware.RequireInternalToken(cfg.Internal.Token))
		{
			sweepLimiter := middleware.NewClientRateLimiter(cfg.Sweep.RatePerMinute, clock.NewRealClock())
			addRoutes(internal, []route{
				{Method: http.MethodPost, Path: "/sweeps/completion", Handler: h.Maintenance.RunCompletionSweep, Mw: []gin.HandlerFunc{sweepLimiter.Middleware()}},
				{Method: http.MethodPost, Path: "/relationships", Handler: h.Maintenance.EnsureRelationship},
			})
		}
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
