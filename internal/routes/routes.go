package routes

import (
	"time"

	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/handlers"
	"github.com/carelinkhq/carelink-backend/internal/middleware"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	caregiverHandler *handlers.CaregiverHandler,
	appointmentHandler *handlers.AppointmentHandler,
	medicationHandler *handlers.MedicationHandler,
	symptomHandler *handlers.SymptomHandler,
	followUpHandler *handlers.FollowUpHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Authenticated identity routes: bearer token + identity loaded from DB.
	authed := api.Group("", middleware.JWTProtected(cfg), middleware.LoadUser(db))
	authed.Get("/auth/me", authHandler.Me)
	authed.Put("/auth/profile", authHandler.UpdateProfile)
	authed.Put("/auth/push-token", authHandler.UpdatePushToken)

	// Caregiver linking
	authed.Post("/caregiver/link", caregiverHandler.Link)
	authed.Get("/caregiver/patient", middleware.RequireRole(models.RoleCaregiver), caregiverHandler.LinkedPatient)
	authed.Get("/caregiver/access-code", middleware.RequireRole(models.RolePatient), caregiverHandler.AccessCode)

	// Domain data: every route below resolves an effective patient partition
	// first; unlinked caregivers never get past RequireScope.
	scoped := authed.Group("", middleware.RequireScope())

	scoped.Get("/appointments", appointmentHandler.List)
	scoped.Post("/appointments", appointmentHandler.Create)
	scoped.Get("/appointments/:id", appointmentHandler.Get)
	scoped.Put("/appointments/:id", appointmentHandler.Update)
	scoped.Delete("/appointments/:id", appointmentHandler.Delete)

	scoped.Get("/medications", medicationHandler.List)
	scoped.Post("/medications", medicationHandler.Create)
	scoped.Put("/medications/:id", medicationHandler.Update)
	scoped.Delete("/medications/:id", medicationHandler.Delete)
	scoped.Post("/medications/:id/taken", medicationHandler.MarkTaken)

	scoped.Get("/symptoms", symptomHandler.List)
	scoped.Post("/symptoms", symptomHandler.Create)
	scoped.Post("/symptoms/bulk", symptomHandler.BulkCreate)

	scoped.Get("/followups", followUpHandler.List)
	scoped.Post("/followups", followUpHandler.Create)
	scoped.Put("/followups/:id", followUpHandler.Update)
	scoped.Delete("/followups/:id", followUpHandler.Delete)

	// Push delivery — admin only
	notifications := authed.Group("/notifications", middleware.RequireRole(models.RoleAdmin))
	notifications.Post("/send", notificationHandler.Send)
	notifications.Post("/reminder", notificationHandler.Reminder)
}
