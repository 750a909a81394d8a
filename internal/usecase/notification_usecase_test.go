package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goal-tracker/internal/domain/entity"
)

type memNotificationRepo struct {
	items     []entity.Notification
	createErr error
}

func (r *memNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items = append(r.items, *n)
	return nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID string) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) SetRead(_ context.Context, id string, read bool) (*entity.Notification, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Read = read
			return &r.items[i], nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *memNotificationRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func TestNotificationLifecycle(t *testing.T) {
	repo := &memNotificationRepo{}
	uc := NewNotificationUsecase(repo, zap.NewNop())
	ctx := context.Background()

	created, err := uc.Create(ctx, &entity.CreateNotificationRequest{UserID: userA, Title: "Hi", Message: "Hello there"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Read)

	updated, err := uc.MarkRead(ctx, &entity.UpdateNotificationRequest{ID: created.ID, Read: true})
	require.NoError(t, err)
	assert.True(t, updated.Read)

	list, err := uc.List(ctx, userA)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.List(ctx, "")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestNotifier_SwallowsErrors(t *testing.T) {
	repo := &memNotificationRepo{createErr: errors.New("db down")}
	notifier := NewNotifier(repo, zap.NewNop())

	assert.NotPanics(t, func() {
		notifier.Notify(context.Background(), userA, "Title", "Message")
	})
	assert.Empty(t, repo.items)
}

func TestNotificationUsecase_RejectsMalformedIDs(t *testing.T) {
	repo := &memNotificationRepo{}
	uc := NewNotificationUsecase(repo, zap.NewNop())
	ctx := context.Background()

	_, err := uc.Create(ctx, &entity.CreateNotificationRequest{UserID: "x", Title: "Hi", Message: "Hello there"})
	require.ErrorIs(t, err, entity.ErrValidation)
	assert.Equal(t, []string{"user_id must be a valid UUID"}, ValidationDetails(err))

	_, err = uc.MarkRead(ctx, &entity.UpdateNotificationRequest{ID: "x", Read: true})
	assert.ErrorIs(t, err, entity.ErrValidation)
	_, err = uc.List(ctx, "x")
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.ErrorIs(t, uc.Delete(ctx, "x"), entity.ErrValidation)
	assert.Empty(t, repo.items)
}
