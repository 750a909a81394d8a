package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
	"goal-tracker/internal/infrastructure/database"
)

type userRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (:id, :email, :name, :created_at, :updated_at)
	`

	if _, err := r.db.DB.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, email, name, google_access_token, google_refresh_token, google_token_expiry, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := r.db.DB.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found, return nil without error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) SaveCredential(ctx context.Context, userID string, cred *entity.Credential) error {
	query := `
		UPDATE users
		SET google_access_token = $1, google_refresh_token = $2, google_token_expiry = $3, updated_at = $4
		WHERE id = $5
	`

	return r.exec(ctx, "save credential", query, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, time.Now(), userID)
}

func (r *userRepository) UpdateAccessToken(ctx context.Context, userID, accessToken, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET google_access_token = $1,
			google_token_expiry = $2,
			google_refresh_token = COALESCE(NULLIF($3, ''), google_refresh_token),
			updated_at = $4
		WHERE id = $5
	`

	return r.exec(ctx, "update access token", query, accessToken, expiresAt, refreshToken, time.Now(), userID)
}

func (r *userRepository) ClearCredential(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET google_access_token = NULL, google_refresh_token = NULL, google_token_expiry = NULL, updated_at = $1
		WHERE id = $2
	`

	return r.exec(ctx, "clear credential", query, time.Now(), userID)
}

func (r *userRepository) exec(ctx context.Context, op, query string, args ...interface{}) error {
	res, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("failed to %s: user %w", op, entity.ErrNotFound)
	}

	return nil
}
