package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
)

// Notifier records a user-facing notification. Failures are logged only; the
// operation that triggered the notification has already happened.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message string)
}

type NotificationUsecase interface {
	List(ctx context.Context, userID string) ([]entity.Notification, error)
	Create(ctx context.Context, req *entity.CreateNotificationRequest) (*entity.Notification, error)
	MarkRead(ctx context.Context, req *entity.UpdateNotificationRequest) (*entity.Notification, error)
	Delete(ctx context.Context, id string) error
}

type notificationUsecase struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
}

func NewNotificationUsecase(repo repository.NotificationRepository, logger *zap.Logger) NotificationUsecase {
	return &notificationUsecase{
		repo:   repo,
		logger: logger,
	}
}

// NewNotifier returns a Notifier writing to repo.
func NewNotifier(repo repository.NotificationRepository, logger *zap.Logger) Notifier {
	return &notificationUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *notificationUsecase) List(ctx context.Context, userID string) ([]entity.Notification, error) {
	if err := validateID("userId", userID); err != nil {
		return nil, err
	}

	notifications, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, err
	}
	return notifications, nil
}

func (u *notificationUsecase) Create(ctx context.Context, req *entity.CreateNotificationRequest) (*entity.Notification, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	notification := newNotification(req.UserID, req.Title, req.Message)
	if err := u.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, req *entity.UpdateNotificationRequest) (*entity.Notification, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return u.repo.SetRead(ctx, req.ID, req.Read)
}

func (u *notificationUsecase) Delete(ctx context.Context, id string) error {
	if err := validateID("id", id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func (u *notificationUsecase) Notify(ctx context.Context, userID, title, message string) {
	if err := u.repo.Create(ctx, newNotification(userID, title, message)); err != nil {
		u.logger.Warn("Failed to create notification",
			zap.String("user_id", userID),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

func newNotification(userID, title, message string) *entity.Notification {
	return &entity.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
