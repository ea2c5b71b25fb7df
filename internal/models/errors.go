// Package models определяет также таксономию ошибок доменного уровня.
//
// Ошибки уникальности и валидации возвращаются вызывающему для исправления,
// ErrMalformedHash и ErrStorageUnavailable — внутренние сбои инфраструктуры.
package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken возвращается при конфликте уникальности имени пользователя.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken возвращается при конфликте уникальности электронной почты.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedHash сигнализирует о повреждённом хэше пароля в хранилище.
	ErrMalformedHash = errors.New("malformed password hash")
	// ErrStorageUnavailable сигнализирует о недоступности хранилища.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FieldViolation описывает одно нарушение правил для конкретного поля кандидата.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError агрегирует все нарушения, найденные за один вызов валидации.
type ValidationError struct {
	Violations []FieldViolation
}

// Error реализует интерфейс error, объединяя нарушения в одну строку.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return strings.Join(msgs, ", ")
}
