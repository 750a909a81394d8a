package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/database"
)

const calendarColumns = `id, user_id, export_as_task, include_amount, include_measure_unit, add_reminders,
	reminder_minutes, last_synced_at, created_at, updated_at`

type calendarIntegrationRepository struct {
	db *database.Database
}

func NewCalendarIntegrationRepository(db *database.Database) repository.CalendarIntegrationRepository {
	return &calendarIntegrationRepository{
		db: db,
	}
}

func (r *calendarIntegrationRepository) FindByUser(ctx context.Context, userID string) (*entity.CalendarIntegration, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendar_integrations WHERE user_id = $1`

	var settings entity.CalendarIntegration
	err := r.db.DB.GetContext(ctx, &settings, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar settings: %w", err)
	}
	return &settings, nil
}

func (r *calendarIntegrationRepository) CreateIfMissing(ctx context.Context, settings *entity.CalendarIntegration) error {
	prepareSettings(settings)

	query := `
		INSERT INTO calendar_integrations (id, user_id, export_as_task, include_amount, include_measure_unit,
			add_reminders, reminder_minutes, created_at, updated_at)
		VALUES (:id, :user_id, :export_as_task, :include_amount, :include_measure_unit,
			:add_reminders, :reminder_minutes, :created_at, :updated_at)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.db.DB.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("failed to create calendar settings: %w", err)
	}
	return nil
}

func (r *calendarIntegrationRepository) Upsert(ctx context.Context, settings *entity.CalendarIntegration) (*entity.CalendarIntegration, error) {
	prepareSettings(settings)

	query := `
		INSERT INTO calendar_integrations (id, user_id, export_as_task, include_amount, include_measure_unit,
			add_reminders, reminder_minutes, created_at, updated_at)
		VALUES (:id, :user_id, :export_as_task, :include_amount, :include_measure_unit,
			:add_reminders, :reminder_minutes, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			export_as_task = EXCLUDED.export_as_task,
			include_amount = EXCLUDED.include_amount,
			include_measure_unit = EXCLUDED.include_measure_unit,
			add_reminders = EXCLUDED.add_reminders,
			reminder_minutes = EXCLUDED.reminder_minutes,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + calendarColumns

	rows, err := r.db.DB.NamedQueryContext(ctx, query, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert calendar settings: %w", err)
	}
	defer rows.Close()

	var saved entity.CalendarIntegration
	if !rows.Next() {
		return nil, fmt.Errorf("failed to upsert calendar settings: no row returned")
	}
	if err := rows.StructScan(&saved); err != nil {
		return nil, fmt.Errorf("failed to scan calendar settings: %w", err)
	}
	return &saved, rows.Err()
}

func (r *calendarIntegrationRepository) TouchLastSynced(ctx context.Context, userID string, at time.Time) error {
	defaults := entity.DefaultCalendarIntegration(userID)

	query := `
		INSERT INTO calendar_integrations (id, user_id, export_as_task, include_amount, include_measure_unit,
			add_reminders, reminder_minutes, last_synced_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		uuid.NewString(),
		userID,
		defaults.ExportAsTask,
		defaults.IncludeAmount,
		defaults.IncludeMeasureUnit,
		defaults.AddReminders,
		defaults.ReminderMinutes,
		at,
	)
	if err != nil {
		return fmt.Errorf("failed to update last synced time: %w", err)
	}
	return nil
}

func prepareSettings(settings *entity.CalendarIntegration) {
	now := time.Now()
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now
}
