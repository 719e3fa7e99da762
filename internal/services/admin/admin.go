// Package services содержит бизнес-логику административных операций над пользователями.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
)

// ErrUserNotFound пользователь с таким UID отсутствует.
var ErrUserNotFound = errors.New("user not found")

// UserRepository описывает контракт административных операций в базе данных.
type UserRepository interface {
	// ListUsers возвращает всех пользователей без хэшей паролей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// RemoveUser удаляет пользователя и возвращает количество удалённых строк.
	RemoveUser(ctx context.Context, userUID string) (int, error)
}

// Cache описывает инвалидацию кешированных профилей.
type Cache interface {
	Invalidate(key string) error
}

// AdminService реализует операции администратора: список и удаление пользователей.
// Проверка роли выполняется в middleware, сервис ей уже доверяет.
type AdminService struct {
	users UserRepository
	cache Cache
	log   *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(users UserRepository, cache Cache, log *slog.Logger) *AdminService {
	return &AdminService{
		users: users,
		cache: cache,
		log:   log,
	}
}

// ListUsers возвращает всех пользователей системы.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}

// RemoveUser удаляет пользователя по UID.
//
// Заметки удалённого пользователя остаются в хранилище: запросы заметок
// всегда фильтруются по владельцу, так что прочитать их больше некому.
func (s *AdminService) RemoveUser(ctx context.Context, userUID string) error {
	count, err := s.users.RemoveUser(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}

	cacheKey := fmt.Sprintf("profile:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove profile from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return nil
}
