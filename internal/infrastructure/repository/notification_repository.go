package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/database"
)

type notificationRepository struct {
	db *database.Database
}

func NewNotificationRepository(db *database.Database) repository.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, read, created_at)
		VALUES (:id, :user_id, :title, :message, :read, :created_at)
	`

	if _, err := r.db.DB.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	query := `
		SELECT id, user_id, title, message, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	notifications := []entity.Notification{}
	if err := r.db.DB.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) SetRead(ctx context.Context, id string, read bool) (*entity.Notification, error) {
	query := `
		UPDATE notifications SET read = $1
		WHERE id = $2
		RETURNING id, user_id, title, message, read, created_at
	`

	var notification entity.Notification
	err := r.db.DB.GetContext(ctx, &notification, query, read, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notification %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	return &notification, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return requireRow(res, "notification")
}
