package repository

import (
	"context"
	"fmt"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает созданную запись.
//
// Уникальность username и email обеспечивается индексами по LOWER(поле):
// при гонке двух одновременных регистраций вторая завершится конфликтом
// уникальности, который переводится в ErrUsernameTaken или ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid, username, email, password_hash, created_at;`
	u := &models.User{}
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash).Scan(
		&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по его username без учёта регистра.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, created_at
			  FROM users
			  WHERE LOWER(username) = LOWER($1)`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email без учёта регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, created_at
			  FROM users
			  WHERE LOWER(email) = LOWER($1)`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return u, nil
}

// ListUsers возвращает список пользователей с пагинацией,
// упорядоченный по дате создания.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, created_at
			  FROM users
			  ORDER BY created_at, uid
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, translateError(op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, translateError(op, err)
	}
	return result, nil
}

// DeleteUser удаляет пользователя по UID и возвращает количество удалённых записей.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE uid = $1`
	res, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, translateError(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}
