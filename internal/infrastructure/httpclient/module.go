package httpclient

import (
	"go.uber.org/fx"

	"goal-tracker/internal/domain/repository"
)

// provideAPILogSaver exposes the api_logs repository as the transport's sink
func provideAPILogSaver(repo repository.APILogRepository) APILogSaver {
	return repo
}

var Module = fx.Module("httpclient",
	fx.Provide(NewHTTPClient),
	fx.Provide(provideAPILogSaver),
)
