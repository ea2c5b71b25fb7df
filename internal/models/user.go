// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное без учёта регистра)
	Email        string    // Электронная почта (уникальная без учёта регистра)
	PasswordHash string    // Хэш пароля пользователя, никогда не пустой
	CreatedAt    time.Time // Дата создания записи, неизменяемая
}

// Candidate содержит несохранённые данные пользователя,
// ожидающие валидации перед созданием учётной записи.
type Candidate struct {
	Username string
	Email    string
	Password string
}

// UserView — безопасное представление пользователя для API-ответов,
// не содержит хэш пароля.
type UserView struct {
	UID       string    `json:"uid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// View возвращает безопасное представление пользователя.
func (u *User) View() UserView {
	return UserView{
		UID:       u.UID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
