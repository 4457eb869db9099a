package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fluxoapp/fluxo-api/internal/audit"
	"github.com/fluxoapp/fluxo-api/internal/cache"
	"github.com/fluxoapp/fluxo-api/internal/config"
	"github.com/fluxoapp/fluxo-api/internal/handlers"
	infraRepo "github.com/fluxoapp/fluxo-api/internal/infra/repository"
	"github.com/fluxoapp/fluxo-api/internal/middleware"
	"github.com/fluxoapp/fluxo-api/internal/storage"
	ucAppointment "github.com/fluxoapp/fluxo-api/internal/usecase/appointment"
	ucDashboard "github.com/fluxoapp/fluxo-api/internal/usecase/dashboard"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	c *cache.Cache,
	cfg *config.Config,
	log zerolog.Logger,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	photoStorage := storage.NewPhotoStorage(cfg)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailableProfessionals(scheduleRepo)
	slotsUC := ucAppointment.NewGetAvailableSlots(scheduleRepo)
	daysUC := ucAppointment.NewGetAvailableDays(scheduleRepo)
	createUC := ucAppointment.NewCreateAppointment(scheduleRepo, auditDispatcher)
	updateUC := ucAppointment.NewUpdateAppointment(scheduleRepo, auditDispatcher)
	deleteUC := ucAppointment.NewDeleteAppointment(scheduleRepo, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(scheduleRepo, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(scheduleRepo, auditDispatcher)

	statsUC := ucDashboard.NewGetStats(scheduleRepo, c)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db, photoStorage)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(statsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		scheduleRepo,
		availabilityUC,
		slotsUC,
		daysUC,
		createUC,
		updateUC,
		deleteUC,
		cancelUC,
		completeUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		scheduleRepo,
		slotsUC,
		daysUC,
		availabilityUC,
		createUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (slug do negócio)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/days", publicHandler.Days)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// DISPONIBILIDADE
			// ------------------------------
			secured.GET("/availability", appointmentHandler.Availability)
			secured.GET("/slots", appointmentHandler.Slots)
			secured.GET("/days", appointmentHandler.Days)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// CADASTROS
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/professionals", professionalHandler.List)
			secured.POST("/professionals", professionalHandler.Create)
			secured.DELETE("/professionals/:id", professionalHandler.Delete)
			secured.POST("/professionals/:id/services", professionalHandler.AddService)
			secured.DELETE("/professionals/:id/services/:serviceID", professionalHandler.RemoveService)
			secured.POST("/professionals/:id/photo", professionalHandler.UploadPhoto)

			secured.GET("/business-hours", businessHoursHandler.Get)
			secured.PUT("/business-hours", businessHoursHandler.Update)

			// ------------------------------
			// DASHBOARD / AUDITORIA
			// ------------------------------
			secured.GET("/dashboard/stats", dashboardHandler.Stats)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
