package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"

	"goal-tracker/internal/config"
	"goal-tracker/internal/delivery/http/handler"
	"goal-tracker/internal/domain/entity"
)

type Router struct {
	app                 *fiber.App
	config              *config.Config
	healthHandler       *handler.HealthHandler
	calendarHandler     *handler.CalendarHandler
	planHandler         *handler.PlanHandler
	appointmentHandler  *handler.AppointmentHandler
	notificationHandler *handler.NotificationHandler
	userHandler         *handler.UserHandler
	logHandler          *handler.LogHandler
}

func NewRouter(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	calendarHandler *handler.CalendarHandler,
	planHandler *handler.PlanHandler,
	appointmentHandler *handler.AppointmentHandler,
	notificationHandler *handler.NotificationHandler,
	userHandler *handler.UserHandler,
	logHandler *handler.LogHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
	})

	return &Router{
		app:                 app,
		config:              cfg,
		healthHandler:       healthHandler,
		calendarHandler:     calendarHandler,
		planHandler:         planHandler,
		appointmentHandler:  appointmentHandler,
		notificationHandler: notificationHandler,
		userHandler:         userHandler,
		logHandler:          logHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.config.App.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		// Google authorization
		auth := api.Group("/auth/google")
		{
			auth.Get("", r.calendarHandler.Connect)
			auth.Get("/callback", r.calendarHandler.Callback)
		}

		calendar := api.Group("/calendar")
		{
			calendar.Post("/export", r.calendarHandler.Export)
			calendar.Get("/settings", r.calendarHandler.GetSettings)
			calendar.Put("/settings", r.calendarHandler.UpdateSettings)
			calendar.Delete("/settings", r.calendarHandler.Disconnect)
		}

		plans := api.Group("/plans")
		{
			plans.Post("/preview", r.planHandler.Preview)
			plans.Post("", r.planHandler.Create)
			plans.Get("", r.planHandler.List)
			plans.Get("/:id", r.planHandler.Get)
			plans.Delete("/:id", r.planHandler.Delete)
		}

		appointments := api.Group("/appointments")
		{
			appointments.Get("", r.appointmentHandler.List)
			appointments.Post("", r.appointmentHandler.Create)
			appointments.Put("", r.appointmentHandler.Update)
			appointments.Delete("", r.appointmentHandler.Delete)
		}

		notifications := api.Group("/notifications")
		{
			notifications.Get("", r.notificationHandler.List)
			notifications.Post("", r.notificationHandler.Create)
			notifications.Put("", r.notificationHandler.MarkRead)
			notifications.Delete("", r.notificationHandler.Delete)
		}

		users := api.Group("/users")
		{
			users.Post("", r.userHandler.Create)
			users.Get("/:id", r.userHandler.Get)
		}

		// Log routes
		logs := api.Group("/logs")
		{
			logs.Get("", r.logHandler.GetLogs)
			logs.Get("/search", r.logHandler.SearchLogs)
		}
	}

	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(entity.NewErrorResponse(utils.StatusMessage(code), err.Error()))
}
