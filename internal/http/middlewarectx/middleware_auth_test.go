package middlewarectx_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nandanksingh/secure-user-api/internal/http/middlewarectx"
	"github.com/nandanksingh/secure-user-api/internal/models"
)

// Мок сервиса аутентификации
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*models.User, bool, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Bool(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockUser       *models.User
		mockValid      bool
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token validation error",
			authHeader:     "Bearer token",
			mockErr:        errors.New("parse error"),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer token",
			mockUser: &models.User{
				Username: "testuser",
				UID:      "550e8400-e29b-41d4-a716-446655440000",
			},
			mockValid:      true,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if strings.HasPrefix(tt.authHeader, "Bearer ") {
				authMock.On("ValidateToken", mock.Anything, "token").
					Return(tt.mockUser, tt.mockValid, tt.mockErr).Once()
			}

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				username := r.Context().Value(middlewarectx.User)
				useruid := r.Context().Value(middlewarectx.UserUID)
				assert.Equal(t, "testuser", username)
				assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", useruid)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/users/some-uid", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}

// Атрибуты логгера не должны накапливаться между запросами:
// один и тот же middleware обслуживает много запросов подряд.
func TestJWTMiddleware_LoggerAttrsDoNotAccumulate(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))

	authMock := new(AuthServiceMock)
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := middlewarectx.JWTMiddleware(authMock, logger)(nextHandler)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/users/some-uid", nil)
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, "op=middlewarectx.JWTMiddleware"))
		assert.Equal(t, 1, strings.Count(line, "request_id="))
	}
}
