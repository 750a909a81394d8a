package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/database"
)

const appointmentColumns = `
	a.id, a.plan_id, a.user_id, a.date_start, a.details, a.amount, a.measure_unit, a.completed, a.created_at, a.updated_at,
	p.name AS plan_name, p.category AS plan_category`

// appointmentRow is an appointment joined with its plan
type appointmentRow struct {
	entity.Appointment
	PlanName     sql.NullString `db:"plan_name"`
	PlanCategory sql.NullString `db:"plan_category"`
}

func (r appointmentRow) toEntity() entity.Appointment {
	a := r.Appointment
	if r.PlanName.Valid {
		a.Plan = &entity.PlanSummary{
			Name:     r.PlanName.String,
			Category: r.PlanCategory.String,
		}
	}
	return a
}

func toAppointments(rows []appointmentRow) []entity.Appointment {
	out := make([]entity.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out
}

type appointmentRepository struct {
	db *database.Database
}

func NewAppointmentRepository(db *database.Database) repository.AppointmentRepository {
	return &appointmentRepository{
		db: db,
	}
}

func (r *appointmentRepository) List(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != "" {
		add("a.user_id = $%d", filter.UserID)
	}
	if filter.PlanID != "" {
		add("a.plan_id = $%d", filter.PlanID)
	}
	if filter.StartDate != nil {
		add("a.date_start >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("a.date_start <= $%d", *filter.EndDate)
	}

	query := `SELECT` + appointmentColumns + `
		FROM appointments a
		LEFT JOIN plans p ON p.id = a.plan_id`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY a.date_start ASC"

	var rows []appointmentRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return toAppointments(rows), nil
}

func (r *appointmentRepository) FindByIDsForUser(ctx context.Context, userID string, ids []string) ([]entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments a
		LEFT JOIN plans p ON p.id = a.plan_id
		WHERE a.id::text = ANY($1) AND a.user_id = $2
		ORDER BY a.date_start ASC`

	var rows []appointmentRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, pq.Array(ids), userID); err != nil {
		return nil, fmt.Errorf("failed to find appointments for export: %w", err)
	}

	return toAppointments(rows), nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments a
		LEFT JOIN plans p ON p.id = a.plan_id
		WHERE a.id = $1`

	var row appointmentRow
	err := r.db.DB.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	a := row.toEntity()
	return &a, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	if _, err := r.db.DB.NamedExecContext(ctx, insertAppointmentSQL, appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	appointment.UpdatedAt = time.Now()

	query := `
		UPDATE appointments
		SET date_start = :date_start, details = :details, amount = :amount, measure_unit = :measure_unit,
			completed = :completed, updated_at = :updated_at
		WHERE id = :id
	`

	res, err := r.db.DB.NamedExecContext(ctx, query, appointment)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return requireRow(res, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return requireRow(res, "appointment")
}

const insertAppointmentSQL = `
	INSERT INTO appointments (id, plan_id, user_id, date_start, details, amount, measure_unit, completed, created_at, updated_at)
	VALUES (:id, :plan_id, :user_id, :date_start, :details, :amount, :measure_unit, :completed, :created_at, :updated_at)
`

// requireRow turns a zero-row write into ErrNotFound
func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %w", what, entity.ErrNotFound)
	}
	return nil
}
