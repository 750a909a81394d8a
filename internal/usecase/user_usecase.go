package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/domain/repository"
)

type UserUsecase interface {
	Create(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
}

type userUsecase struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserUsecase(repo repository.UserRepository, logger *zap.Logger) UserUsecase {
	return &userUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *userUsecase) Create(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("User created", zap.String("user_id", user.ID))
	return user, nil
}

func (u *userUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", entity.ErrNotFound)
	}
	return user, nil
}
