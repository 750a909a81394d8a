package http

import (
	"go.uber.org/fx"

	"goal-tracker/internal/delivery/http/handler"
	"goal-tracker/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewHealthHandler,
		handler.NewCalendarHandler,
		handler.NewPlanHandler,
		handler.NewAppointmentHandler,
		handler.NewNotificationHandler,
		handler.NewUserHandler,
		handler.NewLogHandler,
		router.NewRouter,
	),
)
