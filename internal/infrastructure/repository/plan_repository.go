package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/database"
)

type planRepository struct {
	db *database.Database
}

func NewPlanRepository(db *database.Database) repository.PlanRepository {
	return &planRepository{
		db: db,
	}
}

func (r *planRepository) CreateWithAppointments(ctx context.Context, plan *entity.Plan, appointments []entity.Appointment) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO plans (id, user_id, name, goal, category, current_level, created_at, updated_at)
		VALUES (:id, :user_id, :name, :goal, :category, :current_level, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, plan); err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	for i := range appointments {
		if _, err := tx.NamedExecContext(ctx, insertAppointmentSQL, &appointments[i]); err != nil {
			return fmt.Errorf("failed to create appointment %d of plan: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan: %w", err)
	}

	return nil
}

func (r *planRepository) ListByUser(ctx context.Context, userID string) ([]entity.Plan, error) {
	query := `
		SELECT id, user_id, name, goal, category, current_level, created_at, updated_at
		FROM plans
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	plans := []entity.Plan{}
	if err := r.db.DB.SelectContext(ctx, &plans, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if len(plans) == 0 {
		return plans, nil
	}

	if err := r.attachAppointments(ctx, plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *planRepository) FindByID(ctx context.Context, userID, planID string) (*entity.Plan, error) {
	query := `
		SELECT id, user_id, name, goal, category, current_level, created_at, updated_at
		FROM plans
		WHERE id = $1 AND user_id = $2
	`

	var plan entity.Plan
	err := r.db.DB.GetContext(ctx, &plan, query, planID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	plans := []entity.Plan{plan}
	if err := r.attachAppointments(ctx, plans); err != nil {
		return nil, err
	}

	return &plans[0], nil
}

func (r *planRepository) Delete(ctx context.Context, userID, planID string) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM plans WHERE id = $1 AND user_id = $2`, planID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return requireRow(res, "plan")
}

func (r *planRepository) attachAppointments(ctx context.Context, plans []entity.Plan) error {
	ids := make([]string, len(plans))
	byID := make(map[string]int, len(plans))
	for i := range plans {
		ids[i] = plans[i].ID
		byID[plans[i].ID] = i
		plans[i].Appointments = []entity.Appointment{}
	}

	query := `
		SELECT id, plan_id, user_id, date_start, details, amount, measure_unit, completed, created_at, updated_at
		FROM appointments
		WHERE plan_id::text = ANY($1)
		ORDER BY date_start ASC
	`

	var appointments []entity.Appointment
	if err := r.db.DB.SelectContext(ctx, &appointments, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load plan appointments: %w", err)
	}

	for _, a := range appointments {
		if i, ok := byID[a.PlanID]; ok {
			plans[i].Appointments = append(plans[i].Appointments, a)
		}
	}

	return nil
}
