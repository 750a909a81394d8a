package usecase

import "go.uber.org/fx"

var Module = fx.Module("usecase",
	fx.Provide(NewNotifier),
	fx.Provide(NewNotificationUsecase),
	fx.Provide(NewCalendarUsecase),
	fx.Provide(NewPlanUsecase),
	fx.Provide(NewAppointmentUsecase),
	fx.Provide(NewUserUsecase),
	fx.Provide(NewLogUsecase),
)
