package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, email, passwordHash string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash)
		VALUES ($1, $2, $3, $4)`,
		userUID, username, email, passwordHash)
	require.NoError(t, err)
}

// TestUserData содержит стандартные тестовые данные пользователя
type TestUserData struct {
	UID          string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// GetTestUserData возвращает стандартные тестовые данные пользователя
func GetTestUserData() TestUserData {
	return TestUserData{
		UID:          uuid.New().String(),
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4Vn2g75hYB1wCkNe1rdO7cVPj1a",
		CreatedAt:    time.Now().UTC(),
	}
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, userUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyUserDeleted проверяет отсутствие пользователя в БД
func (v *TestVerification) VerifyUserDeleted(t *testing.T, userUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
