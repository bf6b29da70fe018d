package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/config"
	"github.com/BruksfildServices01/service-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/service-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
)

// Deps are the process-wide singletons the routes are built from.
// Redis is optional: without it public booking is not rate limited.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Redis  *redis.Client

	AuditLogger     *audit.Logger
	AuditDispatcher *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	db := deps.DB
	cfg := deps.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(deps.Log),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	bookingLimiter := middleware.NewRateLimiter(
		deps.Redis,
		cfg.BookingRateLimit,
		cfg.BookingRateWindow,
		"rl:booking",
		deps.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	providerHandler := handlers.NewProviderHandler(db, deps.AuditDispatcher)

	serviceHandler := handlers.NewServiceHandler(db, deps.AuditDispatcher)
	employeeHandler := handlers.NewEmployeeHandler(db, deps.AuditDispatcher)
	clientHandler := handlers.NewClientHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(
		appointmentRepo,
		scheduleRepo,
		deps.AuditDispatcher,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		deps.AuditDispatcher,
		deps.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogger)

	publicHandler := handlers.NewPublicHandler(
		db,
		appointmentRepo,
		deps.AuditDispatcher,
		deps.Log,
	)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/availability/summary", publicHandler.DaySummary)
			publicAPI.GET("/:slug/availability/month", publicHandler.MonthSummary)
			publicAPI.POST("/:slug/appointments", bookingLimiter.Middleware(), publicHandler.Book)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/services", serviceHandler.List)
			secured.GET("/employees", employeeHandler.List)
			secured.GET("/schedules", scheduleHandler.ListSchedules)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// OWNER ONLY
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireOwner())
			{
				owner.GET("/provider", providerHandler.Get)
				owner.PUT("/provider", providerHandler.Update)

				owner.POST("/services", serviceHandler.Create)
				owner.PUT("/services/:id", serviceHandler.Update)
				owner.DELETE("/services/:id", serviceHandler.Delete)

				owner.POST("/employees", employeeHandler.Create)
				owner.POST("/employees/:id/login", employeeHandler.CreateLogin)
				owner.POST("/employees/:id/services/:serviceId", scheduleHandler.AssignService)
				owner.DELETE("/employees/:id/services/:serviceId", scheduleHandler.UnassignService)

				owner.GET("/business-hours", scheduleHandler.GetBusinessHours)
				owner.PUT("/business-hours", scheduleHandler.UpdateBusinessHours)

				owner.GET("/clients", clientHandler.List)
				owner.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
