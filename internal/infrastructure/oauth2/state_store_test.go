package oauth2

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
	"goal-tracker/internal/infrastructure/redis"
	"goal-tracker/internal/testutil"
)

func TestRedisStateStore(t *testing.T) {
	addr := testutil.StartRedis(t)

	client, err := redis.Connect(&goredis.Options{Addr: addr}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{OAuth: config.OAuthConfig{StateTTL: time.Minute}}
	store := NewStateStore(cfg, client, zap.NewNop())
	ctx := context.Background()

	nonce, err := store.Issue(ctx, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, "u1", nonce)

	exists, err := client.Exists(ctx, stateKeyPrefix+nonce)
	require.NoError(t, err)
	assert.True(t, exists)

	userID, err := store.Consume(ctx, nonce)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = store.Consume(ctx, nonce)
	assert.ErrorIs(t, err, entity.ErrInvalidState)

	_, err = store.Consume(ctx, "forged")
	assert.ErrorIs(t, err, entity.ErrInvalidState)
}

func TestRedisStateStore_Expires(t *testing.T) {
	addr := testutil.StartRedis(t)

	client, err := redis.Connect(&goredis.Options{Addr: addr}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{OAuth: config.OAuthConfig{StateTTL: time.Second}}
	store := NewStateStore(cfg, client, zap.NewNop())
	ctx := context.Background()

	nonce, err := store.Issue(ctx, "u1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		exists, err := client.Exists(ctx, stateKeyPrefix+nonce)
		return err == nil && !exists
	}, 5*time.Second, 100*time.Millisecond)

	_, err = store.Consume(ctx, nonce)
	assert.ErrorIs(t, err, entity.ErrInvalidState)
}
