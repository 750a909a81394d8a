package oauth2

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/infrastructure/redis"
)

const stateKeyPrefix = "goaltracker:oauth_state:"

// StateStore binds the OAuth state parameter to a pending authorization.
type StateStore interface {
	// Issue returns a fresh nonce remembered for userID until the TTL elapses
	Issue(ctx context.Context, userID string) (string, error)

	// Consume resolves a nonce to its user. A nonce resolves at most once.
	Consume(ctx context.Context, nonce string) (string, error)
}

type redisStateStore struct {
	redis  *redis.RedisClient
	ttl    time.Duration
	logger *zap.Logger
}

func NewStateStore(cfg *config.Config, redisClient *redis.RedisClient, logger *zap.Logger) StateStore {
	return &redisStateStore{
		redis:  redisClient,
		ttl:    cfg.OAuth.StateTTL,
		logger: logger,
	}
}

func (s *redisStateStore) Issue(ctx context.Context, userID string) (string, error) {
	nonce := uuid.NewString()
	if err := s.redis.Set(ctx, stateKeyPrefix+nonce, userID, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	s.logger.Debug("OAuth state issued",
		zap.String("user_id", userID),
		zap.Duration("ttl", s.ttl),
	)
	return nonce, nil
}

func (s *redisStateStore) Consume(ctx context.Context, nonce string) (string, error) {
	if nonce == "" {
		return "", entity.ErrInvalidState
	}

	userID, err := s.redis.GetDel(ctx, stateKeyPrefix+nonce)
	if redis.IsNil(err) || (err == nil && userID == "") {
		return "", entity.ErrInvalidState
	}
	if err != nil {
		return "", fmt.Errorf("failed to read oauth state: %w", err)
	}
	return userID, nil
}
