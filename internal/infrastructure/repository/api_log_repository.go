package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/database"
)

type apiLogRepository struct {
	db     *database.Database
	logger *zap.Logger
}

// NewAPILogRepository creates a new API log repository
func NewAPILogRepository(db *database.Database, logger *zap.Logger) repository.APILogRepository {
	return &apiLogRepository{
		db:     db,
		logger: logger,
	}
}

// Save saves an API log entry to the database
func (r *apiLogRepository) Save(ctx context.Context, log *entity.APILog) error {
	query := `
		INSERT INTO api_logs (endpoint, method, request_body, response_body, status_code, duration_ms, user_id, created_at)
		VALUES (:endpoint, :method, :request_body, :response_body, :status_code, :duration_ms, :user_id, :created_at)
	`

	if _, err := r.db.DB.NamedExecContext(ctx, query, log); err != nil {
		r.logger.Error("Failed to save API log",
			zap.String("endpoint", log.Endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save API log: %w", err)
	}

	return nil
}

func (r *apiLogRepository) FindAll(ctx context.Context, limit int) ([]entity.APILog, error) {
	query := `
		SELECT id, endpoint, method, request_body, response_body, status_code, duration_ms, user_id, created_at
		FROM api_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	logs := []entity.APILog{}
	if err := r.db.DB.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list API logs: %w", err)
	}

	return logs, nil
}

func (r *apiLogRepository) FindByUser(ctx context.Context, userID string, limit int) ([]entity.APILog, error) {
	query := `
		SELECT id, endpoint, method, request_body, response_body, status_code, duration_ms, user_id, created_at
		FROM api_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	logs := []entity.APILog{}
	if err := r.db.DB.SelectContext(ctx, &logs, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to search API logs: %w", err)
	}

	return logs, nil
}
