package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
)

type AppointmentUsecase interface {
	List(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	Create(ctx context.Context, req *entity.CreateAppointmentRequest) (*entity.Appointment, error)
	Update(ctx context.Context, req *entity.UpdateAppointmentRequest) (*entity.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type appointmentUsecase struct {
	repo   repository.AppointmentRepository
	logger *zap.Logger
}

func NewAppointmentUsecase(repo repository.AppointmentRepository, logger *zap.Logger) AppointmentUsecase {
	return &appointmentUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *appointmentUsecase) List(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	if err := validateID("userId", filter.UserID); err != nil {
		return nil, err
	}
	if filter.PlanID != "" {
		if err := validateID("planId", filter.PlanID); err != nil {
			return nil, err
		}
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, validationError("endDate must not be before startDate")
	}

	appointments, err := u.repo.List(ctx, filter)
	if err != nil {
		u.logger.Error("Failed to list appointments", zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

func (u *appointmentUsecase) Create(ctx context.Context, req *entity.CreateAppointmentRequest) (*entity.Appointment, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	appointment := &entity.Appointment{
		ID:          uuid.NewString(),
		PlanID:      req.PlanID,
		UserID:      req.UserID,
		DateStart:   req.DateStart,
		Details:     req.Details,
		Amount:      req.Amount,
		MeasureUnit: req.MeasureUnit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	u.logger.Info("Appointment created",
		zap.String("user_id", req.UserID),
		zap.String("plan_id", req.PlanID),
		zap.String("appointment_id", appointment.ID),
	)
	return appointment, nil
}

func (u *appointmentUsecase) Update(ctx context.Context, req *entity.UpdateAppointmentRequest) (*entity.Appointment, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	appointment, err := u.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %w", entity.ErrNotFound)
	}

	applyAppointmentUpdate(appointment, req)

	if err := u.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id string) error {
	if err := validateID("id", id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func applyAppointmentUpdate(a *entity.Appointment, req *entity.UpdateAppointmentRequest) {
	if req.DateStart != nil {
		a.DateStart = *req.DateStart
	}
	if req.Details != nil {
		a.Details = *req.Details
	}
	if req.Amount != nil {
		a.Amount = *req.Amount
	}
	if req.MeasureUnit != nil {
		a.MeasureUnit = *req.MeasureUnit
	}
	if req.Completed != nil {
		a.Completed = *req.Completed
	}
}
