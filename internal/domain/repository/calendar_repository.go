package repository

import (
	"context"
	"time"

	"goal-tracker/internal/domain/entity"
)

type CalendarIntegrationRepository interface {
	// FindByUser returns nil, nil when the user has no settings yet
	FindByUser(ctx context.Context, userID string) (*entity.CalendarIntegration, error)

	// CreateIfMissing inserts settings unless the user already has a row
	CreateIfMissing(ctx context.Context, settings *entity.CalendarIntegration) error

	Upsert(ctx context.Context, settings *entity.CalendarIntegration) (*entity.CalendarIntegration, error)

	// TouchLastSynced sets last_synced_at, creating default settings when absent
	TouchLastSynced(ctx context.Context, userID string, at time.Time) error
}
