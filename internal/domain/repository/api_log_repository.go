package repository

import (
	"context"

	"goal-tracker/internal/domain/entity"
)

type APILogRepository interface {
	Save(ctx context.Context, log *entity.APILog) error
	FindAll(ctx context.Context, limit int) ([]entity.APILog, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]entity.APILog, error)
}
