package repository

import (
	"context"

	"goal-tracker/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID string) ([]entity.Notification, error)
	SetRead(ctx context.Context, id string, read bool) (*entity.Notification, error)
	Delete(ctx context.Context, id string) error
}
