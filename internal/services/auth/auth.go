// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/notes-keeper/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/password"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/notes-keeper/internal/lib/sl"
	"github.com/magabrotheeeer/notes-keeper/internal/models"
	"github.com/magabrotheeeer/notes-keeper/internal/storage/repository"
)

// Ошибки бизнес-уровня, по которым обработчики выбирают HTTP-статус.
var (
	// ErrUserExists пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials пароль не совпал с сохранённым хэшем.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUID возвращает пользователя по UID или repository.ErrNotFound.
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)
}

// EventPublisher публикует доменные события сервиса.
type EventPublisher interface {
	PublishUserRegistered(event rabbitmq.UserRegisteredEvent) error
}

// Cache описывает методы для кэширования профилей.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// AuthService отвечает за регистрацию, авторизацию и выдачу профиля.
type AuthService struct {
	users      UserRepository
	jwtMaker   jwt.Maker
	events     EventPublisher
	cache      Cache
	adminEmail string
	log        *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
//
// adminEmail — email, регистрация с которым получает роль admin.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, events EventPublisher,
	cache Cache, adminEmail string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtMaker:   jwtMaker,
		events:     events,
		cache:      cache,
		adminEmail: adminEmail,
		log:        log,
	}
}

// Register создает нового пользователя с хэшированием пароля и выдает токен.
//
// Повторная регистрация существующего email возвращает ErrUserExists:
// обработчик превращает её в мягкий отказ, а не в транспортную ошибку.
func (s *AuthService) Register(ctx context.Context, fullName, email, rawPassword string) (*models.User, string, error) {
	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	role := models.RoleUser
	if s.adminEmail != "" && email == s.adminEmail {
		role = models.RoleAdmin
	}
	uid, err := s.users.CreateUser(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	})
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return nil, "", err
	}

	if s.events != nil {
		event := rabbitmq.UserRegisteredEvent{
			UserUID:  user.UID,
			FullName: user.FullName,
			Email:    user.Email,
		}
		if err := s.events.PublishUserRegistered(event); err != nil {
			s.log.Warn("failed to publish user registered event", sl.Err(err))
		}
	}

	return user, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
}

// GetProfile возвращает пользователя по UID из проверенного токена.
//
// Отсутствие записи означает, что учётная запись удалена после выдачи токена.
func (s *AuthService) GetProfile(ctx context.Context, userUID string) (*models.User, error) {
	cacheKey := fmt.Sprintf("profile:%s", userUID)
	var cached *models.User
	if s.cache != nil {
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read profile from cache", slog.String("key", cacheKey), sl.Err(err))
		} else if found {
			return cached, nil
		}
	}

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(cacheKey, user, time.Hour); err != nil {
			s.log.Warn("failed to cache profile", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return user, nil
}
