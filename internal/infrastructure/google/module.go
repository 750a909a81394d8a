package google

import "go.uber.org/fx"

var Module = fx.Module("google",
	fx.Provide(NewCalendarClient),
)
