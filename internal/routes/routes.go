package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	"github.com/devCaiqueWS/barber-scheduler/internal/config"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/handlers"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
	"github.com/devCaiqueWS/barber-scheduler/internal/middleware"
	"github.com/devCaiqueWS/barber-scheduler/internal/timezone"
	ucAppointment "github.com/devCaiqueWS/barber-scheduler/internal/usecase/appointment"
	ucBarber "github.com/devCaiqueWS/barber-scheduler/internal/usecase/barber"
	ucOverride "github.com/devCaiqueWS/barber-scheduler/internal/usecase/override"
)

// Deps is everything the HTTP layer needs from the process. Locker and Ping
// may be nil.
type Deps struct {
	Config    *config.Holder
	Log       *zap.Logger
	Repo      domain.Repository
	Overrides schedule.OverrideStore
	AuditLogs audit.Reader
	Audit     audit.Recorder
	Locker    lock.Locker
	Clock     timezone.Clock
	Ping      handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config.Current()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(d.Repo, d.Overrides, d.Config, d.Clock)

	createBookingUC := ucAppointment.NewCreateBooking(
		d.Repo,
		d.Overrides,
		d.Locker,
		d.Config,
		d.Clock,
		d.Audit,
		d.Log,
	)

	confirmUC := ucAppointment.NewConfirmAppointment(d.Repo, d.Audit)
	cancelUC := ucAppointment.NewCancelAppointment(d.Repo, d.Config, d.Clock, d.Audit)
	completeUC := ucAppointment.NewCompleteAppointment(d.Repo, d.Config, d.Clock, d.Audit)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(d.Repo)
	resolveUC := ucAppointment.NewResolveBarbershop(d.Repo)

	getOverrideUC := ucOverride.NewGetDayOverride(d.Overrides)
	setOverrideUC := ucOverride.NewSetDayOverride(d.Repo, d.Overrides, d.Locker, d.Audit)
	clearOverrideUC := ucOverride.NewClearDayOverride(d.Repo, d.Overrides, d.Locker, d.Audit)

	getScheduleUC := ucBarber.NewGetSchedule(d.Repo, d.Config)
	updateScheduleUC := ucBarber.NewUpdateSchedule(d.Repo, d.Config, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Ping)
	publicHandler := handlers.NewPublicHandler(resolveUC, availabilityUC, createBookingUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		availabilityUC,
		createBookingUC,
		confirmUC,
		cancelUC,
		completeUC,
		listByDateUC,
	)

	overrideHandler := handlers.NewDayOverrideHandler(getOverrideUC, setOverrideUC, clearOverrideUC)
	scheduleHandler := handlers.NewScheduleHandler(getScheduleUC, updateScheduleUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	r.GET("/health", healthHandler.Get)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		if cfg.RateLimitRPS > 0 {
			publicAPI.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, d.Log).Middleware())
		}
		{
			publicAPI.GET("/:slug/barbers/:barberID/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/availability", appointmentHandler.Availability)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/overrides/:date", overrideHandler.Get)
			secured.PUT("/overrides/:date", overrideHandler.Put)
			secured.DELETE("/overrides/:date", overrideHandler.Delete)

			secured.GET("/schedule", scheduleHandler.Get)
			secured.PUT("/schedule", scheduleHandler.Update)

			if d.AuditLogs != nil {
				secured.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
