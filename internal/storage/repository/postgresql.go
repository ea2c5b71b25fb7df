// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями. Предоставляет методы создания, чтения,
// удаления и листинга записей, а также перевод ошибок базы данных
// в доменную таксономию ошибок.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

// Имена уникальных индексов из миграций. По имени нарушенного ограничения
// конфликт привязывается к конкретному полю.
const (
	constraintUsernameLower = "users_username_lower_key"
	constraintEmailLower    = "users_email_lower_key"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrStorageUnavailable, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// translateError переводит ошибки уровня базы данных в доменные.
//
// Нарушение уникального индекса становится конфликтом конкретного поля,
// отсутствие строк — ErrUserNotFound, ошибки соединения — ErrStorageUnavailable.
func translateError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraintUsernameLower:
			return fmt.Errorf("%s: %w", op, models.ErrUsernameTaken)
		case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraintEmailLower:
			return fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		case pgerrcode.IsConnectionException(pgErr.Code):
			return fmt.Errorf("%s: %w: %w", op, models.ErrStorageUnavailable, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
