package remove_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nandanksingh/secure-user-api/internal/http/handlers/user/remove"
	"github.com/nandanksingh/secure-user-api/internal/models"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) Delete(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRemoveHandler(t *testing.T) {
	knownUID := uuid.NewString()
	missingUID := uuid.NewString()

	tests := []struct {
		name           string
		uid            string
		mockSetup      func(s *UserServiceMock)
		expectedStatus int
		checkResponse  func(t *testing.T, body map[string]any)
	}{
		{
			name: "success",
			uid:  knownUID,
			mockSetup: func(s *UserServiceMock) {
				s.On("Delete", mock.Anything, knownUID).Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body map[string]any) {
				data, ok := body["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, float64(1), data["deleted_count"])
			},
		},
		{
			name: "not found",
			uid:  missingUID,
			mockSetup: func(s *UserServiceMock) {
				s.On("Delete", mock.Anything, missingUID).Return(0, nil)
			},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "user not found", body["error"])
			},
		},
		{
			name:           "invalid uid",
			uid:            "42",
			mockSetup:      func(s *UserServiceMock) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage unavailable",
			uid:  knownUID,
			mockSetup: func(s *UserServiceMock) {
				s.On("Delete", mock.Anything, knownUID).
					Return(0, fmt.Errorf("storage.DeleteUser: %w", models.ErrStorageUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "storage unavailable", body["error"])
			},
		},
		{
			name: "internal error",
			uid:  knownUID,
			mockSetup: func(s *UserServiceMock) {
				s.On("Delete", mock.Anything, knownUID).Return(0, errors.New("exec failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(UserServiceMock)
			tt.mockSetup(serviceMock)

			handler := remove.New(newNoopLogger(), serviceMock)

			router := chi.NewRouter()
			router.Delete("/users/{uid}", handler.ServeHTTP)

			req := httptest.NewRequest(http.MethodDelete, "/users/"+tt.uid, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkResponse != nil {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tt.checkResponse(t, body)
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
