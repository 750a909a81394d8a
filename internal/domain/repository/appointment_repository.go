package repository

import (
	"context"

	"goal-tracker/internal/domain/entity"
)

type AppointmentRepository interface {
	List(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)

	// FindByIDsForUser only returns appointments owned by userID
	FindByIDsForUser(ctx context.Context, userID string, ids []string) ([]entity.Appointment, error)

	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	Create(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id string) error
}
