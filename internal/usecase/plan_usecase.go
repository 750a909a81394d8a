package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/planner"
)

const notificationPlanCreated = "New Plan Created"

type PlanUsecase interface {
	// PreviewPlan asks the planner for entries without persisting anything
	PreviewPlan(ctx context.Context, input *entity.PlanInput) ([]entity.PlanEntry, error)
	CreatePlan(ctx context.Context, input *entity.PlanInput) (*entity.PlanWithAppointments, error)
	ListPlans(ctx context.Context, userID string) ([]entity.Plan, error)
	GetPlan(ctx context.Context, userID, planID string) (*entity.Plan, error)
	DeletePlan(ctx context.Context, userID, planID string) error
}

type planUsecase struct {
	planRepo repository.PlanRepository
	userRepo repository.UserRepository
	planner  planner.Planner
	notifier Notifier
	logger   *zap.Logger
}

func NewPlanUsecase(planRepo repository.PlanRepository, userRepo repository.UserRepository, p planner.Planner, notifier Notifier, logger *zap.Logger) PlanUsecase {
	return &planUsecase{
		planRepo: planRepo,
		userRepo: userRepo,
		planner:  p,
		notifier: notifier,
		logger:   logger,
	}
}

func (u *planUsecase) PreviewPlan(ctx context.Context, input *entity.PlanInput) ([]entity.PlanEntry, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	u.logger.Info("Generating plan preview",
		zap.String("name", input.Name),
		zap.String("category", input.Category),
	)

	return u.planner.GeneratePlan(ctx, input)
}

func (u *planUsecase) CreatePlan(ctx context.Context, input *entity.PlanInput) (*entity.PlanWithAppointments, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := validateID("user_id", input.UserID); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", entity.ErrNotFound)
	}

	entries, err := u.planner.GeneratePlan(ctx, input)
	if err != nil {
		u.logger.Error("Failed to generate plan",
			zap.String("user_id", input.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	now := time.Now()
	plan := &entity.Plan{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		Name:         input.Name,
		Goal:         input.Goal,
		Category:     input.Category,
		CurrentLevel: input.CurrentLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	appointments, err := appointmentsFromEntries(plan, entries, now)
	if err != nil {
		return nil, err
	}

	if err := u.planRepo.CreateWithAppointments(ctx, plan, appointments); err != nil {
		return nil, err
	}
	plan.Appointments = appointments

	u.notifier.Notify(ctx, input.UserID, notificationPlanCreated,
		fmt.Sprintf("Your %s plan has been created with %d scheduled activities.", plan.Name, len(appointments)))

	u.logger.Info("Plan created",
		zap.String("user_id", input.UserID),
		zap.String("plan_id", plan.ID),
		zap.Int("appointments", len(appointments)),
	)

	return &entity.PlanWithAppointments{Plan: plan, Appointments: appointments}, nil
}

func (u *planUsecase) ListPlans(ctx context.Context, userID string) ([]entity.Plan, error) {
	if err := validateID("userId", userID); err != nil {
		return nil, err
	}
	return u.planRepo.ListByUser(ctx, userID)
}

func (u *planUsecase) GetPlan(ctx context.Context, userID, planID string) (*entity.Plan, error) {
	if err := multierr.Combine(validateID("userId", userID), validateID("id", planID)); err != nil {
		return nil, err
	}

	plan, err := u.planRepo.FindByID(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %w", entity.ErrNotFound)
	}
	return plan, nil
}

func (u *planUsecase) DeletePlan(ctx context.Context, userID, planID string) error {
	if err := multierr.Combine(validateID("userId", userID), validateID("id", planID)); err != nil {
		return err
	}

	if err := u.planRepo.Delete(ctx, userID, planID); err != nil {
		return err
	}

	u.logger.Info("Plan deleted",
		zap.String("user_id", userID),
		zap.String("plan_id", planID),
	)
	return nil
}

func appointmentsFromEntries(plan *entity.Plan, entries []entity.PlanEntry, now time.Time) ([]entity.Appointment, error) {
	appointments := make([]entity.Appointment, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse(entity.PlanEntryDateLayout, e.DateStart)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date_start %q", entity.ErrPlannerResponse, e.DateStart)
		}

		appointments = append(appointments, entity.Appointment{
			ID:          uuid.NewString(),
			PlanID:      plan.ID,
			UserID:      plan.UserID,
			DateStart:   date,
			Details:     e.Details,
			Amount:      e.Amount,
			MeasureUnit: e.MeasureUnit,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return appointments, nil
}
