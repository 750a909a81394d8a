package repository

import (
	"context"
	"time"

	"goal-tracker/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns nil, nil when the user does not exist
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// SaveCredential stores a freshly exchanged token triple
	SaveCredential(ctx context.Context, userID string, cred *entity.Credential) error

	// UpdateAccessToken replaces access token, expiry and refresh token in one statement
	UpdateAccessToken(ctx context.Context, userID, accessToken, refreshToken string, expiresAt time.Time) error

	// ClearCredential sets all three credential columns to NULL
	ClearCredential(ctx context.Context, userID string) error
}
