// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля со случайной солью для безопасного хранения.
// CompareHash сравнивает сохранённый bcrypt-хеш с введённым паролем: несовпадение
// пароля — не ошибка, а ложный результат; повреждённый хеш — ошибка ErrMalformedHash.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nandanksingh/secure-user-api/internal/models"
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Соль генерируется заново при каждом вызове, поэтому два хэша одного
// пароля различаются, но оба проходят проверку CompareHash.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает (true, nil) при совпадении, (false, nil) при несовпадении
// и (false, models.ErrMalformedHash) если сохранённый хэш повреждён.
func CompareHash(originalHash, externalPassword string) (bool, error) {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: %w", op, models.ErrMalformedHash, err)
	}
}
