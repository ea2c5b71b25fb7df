package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nandanksingh/secure-user-api/internal/lib/password"
	"github.com/nandanksingh/secure-user-api/internal/models"
)

var registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "user_registrations_total",
	Help: "Количество успешно созданных пользователей.",
})

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetUserByUsername возвращает пользователя по username без учёта регистра.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email без учёта регистра.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает список пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// DeleteUser удаляет пользователя по UID и возвращает количество удалённых записей.
	DeleteUser(ctx context.Context, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// RegistrationNotifier публикует событие о регистрации нового пользователя.
type RegistrationNotifier interface {
	NotifyUserRegistered(ctx context.Context, user models.UserView) error
}

// UserService реализует жизненный цикл пользователя: валидацию кандидата,
// атомарное создание с хэшированием пароля, чтение, листинг и удаление.
type UserService struct {
	repo     UserRepository
	cache    Cache
	notifier RegistrationNotifier
	log      *slog.Logger
	validate *validator.Validate
}

// NewUserService создает новый экземпляр UserService.
// notifier может быть nil, если публикация событий не настроена.
func NewUserService(repo UserRepository, cache Cache, notifier RegistrationNotifier, log *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
		validate: newCandidateValidator(),
	}
}

// CreateUser валидирует кандидата, хэширует пароль и сохраняет запись.
//
// Операция атомарна: либо после неё существует полностью валидная запись,
// либо не существует никакой. Конфликт уникальности, обнаруженный индексом
// базы при вставке (гонка двух регистраций), возвращается в том же виде,
// что и нарушение, найденное предварительной проверкой.
func (s *UserService) CreateUser(ctx context.Context, cand models.Candidate) (*models.User, error) {
	violations, err := s.ValidateCandidate(ctx, cand)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, &models.ValidationError{Violations: violations}
	}

	hash, err := password.GetHash(cand.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, models.User{
		Username:     cand.Username,
		Email:        cand.Email,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUsernameTaken):
			return nil, &models.ValidationError{Violations: []models.FieldViolation{
				{Field: "username", Message: "already taken"},
			}}
		case errors.Is(err, models.ErrEmailTaken):
			return nil, &models.ValidationError{Violations: []models.FieldViolation{
				{Field: "email", Message: "already taken"},
			}}
		}
		return nil, err
	}

	s.log.Info("created new user", slog.String("uid", user.UID), slog.String("username", user.Username))
	registrationsTotal.Inc()

	cacheKey := fmt.Sprintf("user:%s", user.UID)
	if err := s.cache.Set(cacheKey, user, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyUserRegistered(ctx, user.View()); err != nil {
			s.log.Warn("failed to publish user registered event", slog.Any("err", err))
		}
	}

	return user, nil
}

// Get возвращает пользователя по UID, используя кеш или репозиторий.
func (s *UserService) Get(ctx context.Context, userUID string) (*models.User, error) {
	var result *models.User
	cacheKey := fmt.Sprintf("user:%s", userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read user from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает список пользователей с пагинацией.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// Delete удаляет пользователя по UID и инвалидирует кеш.
// Возвращает количество удалённых записей.
func (s *UserService) Delete(ctx context.Context, userUID string) (int, error) {
	cacheKey := fmt.Sprintf("user:%s", userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove user from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
