package usecase

import (
	"context"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

// LogUsecase reads back the outbound provider calls recorded by the HTTP transport.
type LogUsecase interface {
	Recent(ctx context.Context, limit int) ([]entity.APILog, error)
	ByUser(ctx context.Context, userID string, limit int) ([]entity.APILog, error)
}

type logUsecase struct {
	repo repository.APILogRepository
}

func NewLogUsecase(repo repository.APILogRepository) LogUsecase {
	return &logUsecase{repo: repo}
}

func (u *logUsecase) Recent(ctx context.Context, limit int) ([]entity.APILog, error) {
	return u.repo.FindAll(ctx, clampLimit(limit))
}

func (u *logUsecase) ByUser(ctx context.Context, userID string, limit int) ([]entity.APILog, error) {
	if userID == "" {
		return nil, validationError("userId parameter required")
	}
	return u.repo.FindByUser(ctx, userID, clampLimit(limit))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLogLimit
	}
	if limit > maxLogLimit {
		return maxLogLimit
	}
	return limit
}
