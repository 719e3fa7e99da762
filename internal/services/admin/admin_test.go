package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *UsersMock) RemoveUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAdminService_ListUsers(t *testing.T) {
	storedUsers := []*models.User{
		{UID: "uid-1", FullName: "Alice", Email: "alice@example.com", Role: models.RoleUser},
		{UID: "uid-2", FullName: "Boss", Email: "boss@example.com", Role: models.RoleAdmin},
	}

	t.Run("список передается из хранилища как есть", func(t *testing.T) {
		users := new(UsersMock)
		users.On("ListUsers", mock.Anything).Return(storedUsers, nil).Once()
		svc := NewAdminService(users, new(CacheMock), NewNoopLogger())

		got, err := svc.ListUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, storedUsers, got)

		users.AssertExpectations(t)
	})

	t.Run("ошибка хранилища пробрасывается", func(t *testing.T) {
		users := new(UsersMock)
		users.On("ListUsers", mock.Anything).Return(nil, errors.New("db down")).Once()
		svc := NewAdminService(users, new(CacheMock), NewNoopLogger())

		_, err := svc.ListUsers(context.Background())
		assert.Error(t, err)

		users.AssertExpectations(t)
	})
}

func TestAdminService_RemoveUser(t *testing.T) {
	t.Run("успешное удаление инвалидирует кеш профиля", func(t *testing.T) {
		users := new(UsersMock)
		cache := new(CacheMock)
		users.On("RemoveUser", mock.Anything, "uid-1").Return(1, nil).Once()
		cache.On("Invalidate", "profile:uid-1").Return(nil).Once()
		svc := NewAdminService(users, cache, NewNoopLogger())

		err := svc.RemoveUser(context.Background(), "uid-1")
		require.NoError(t, err)

		users.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		users := new(UsersMock)
		cache := new(CacheMock)
		users.On("RemoveUser", mock.Anything, "uid-1").Return(0, nil).Once()
		svc := NewAdminService(users, cache, NewNoopLogger())

		err := svc.RemoveUser(context.Background(), "uid-1")
		assert.ErrorIs(t, err, ErrUserNotFound)

		users.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("ошибка кеша не роняет удаление", func(t *testing.T) {
		users := new(UsersMock)
		cache := new(CacheMock)
		users.On("RemoveUser", mock.Anything, "uid-1").Return(1, nil).Once()
		cache.On("Invalidate", "profile:uid-1").Return(errors.New("redis down")).Once()
		svc := NewAdminService(users, cache, NewNoopLogger())

		err := svc.RemoveUser(context.Background(), "uid-1")
		require.NoError(t, err)

		users.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}
