// Package services содержит логику бизнес-уровня для аутентификации пользователей.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nandanksingh/secure-user-api/internal/lib/jwt"
	"github.com/nandanksingh/secure-user-api/internal/lib/password"
	"github.com/nandanksingh/secure-user-api/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за проверку паролей и выдачу JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и генерирует JWT.
//
// Неизвестный username и неверный пароль неразличимы для вызывающего:
// оба случая дают ErrInvalidCredentials. Повреждённый хэш в хранилище —
// отдельная внутренняя ошибка, она не маскируется под неверный пароль.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := password.CompareHash(user.PasswordHash, rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// VerifyPassword проверяет пароль пользователя без выдачи токена.
//
// Возвращает false при несовпадении; ошибка возможна только при
// повреждённом хэше или недоступном хранилище.
func (s *AuthService) VerifyPassword(ctx context.Context, username, rawPassword string) (bool, error) {
	const op = "services.auth.VerifyPassword"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := password.CompareHash(user.PasswordHash, rawPassword)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе и признак валидности.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Username: claims.Username,
		UID:      claims.UserUID,
	}
	return user, true, nil
}
