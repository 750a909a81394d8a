package repository

import (
	"context"

	"goal-tracker/internal/domain/entity"
)

type PlanRepository interface {
	// CreateWithAppointments inserts the plan and its appointments in one transaction
	CreateWithAppointments(ctx context.Context, plan *entity.Plan, appointments []entity.Appointment) error
	ListByUser(ctx context.Context, userID string) ([]entity.Plan, error)
	FindByID(ctx context.Context, userID, planID string) (*entity.Plan, error)
	Delete(ctx context.Context, userID, planID string) error
}
