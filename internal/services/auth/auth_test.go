package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/nandanksingh/secure-user-api/internal/lib/jwt"
	"github.com/nandanksingh/secure-user-api/internal/lib/password"
	"github.com/nandanksingh/secure-user-api/internal/models"
	services "github.com/nandanksingh/secure-user-api/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, useruid string) (string, error) {
	args := m.Called(username, useruid)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func testUser(t *testing.T, username, rawPassword string) *models.User {
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{
		UID:          "550e8400-e29b-41d4-a716-446655440000",
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(t *testing.T, r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: "password123",
			setupMocks: func(t *testing.T, r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(testUser(t, "testuser", "password123"), nil).Once()
				j.On("GenerateToken", "testuser", "550e8400-e29b-41d4-a716-446655440000").
					Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "wrong_password1",
			setupMocks: func(t *testing.T, r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(testUser(t, "testuser", "password123"), nil).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "password123",
			setupMocks: func(_ *testing.T, r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").
					Return(nil, models.ErrUserNotFound).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "malformed stored hash is not a wrong password",
			username: "testuser",
			password: "password123",
			setupMocks: func(_ *testing.T, r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(&models.User{
						UID:          "550e8400-e29b-41d4-a716-446655440000",
						Username:     "testuser",
						PasswordHash: "corrupted",
					}, nil).Once()
			},
			wantErr: models.ErrMalformedHash,
		},
		{
			name:     "storage error",
			username: "testuser",
			password: "password123",
			setupMocks: func(_ *testing.T, r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").
					Return(nil, models.ErrStorageUnavailable).Once()
			},
			wantErr: models.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(t, repo, jwtMock)
			svc := services.NewAuthService(repo, jwtMock)

			token, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyPassword(t *testing.T) {
	repo := new(UserRepoMock)
	user := testUser(t, "testuser", "password123")
	repo.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil)

	svc := services.NewAuthService(repo, new(JwtMakerMock))

	ok, err := svc.VerifyPassword(context.Background(), "testuser", "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyPassword(context.Background(), "testuser", "another_password1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_ValidateToken(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		setupMocks func(j *JwtMakerMock)
		wantValid  bool
	}{
		{
			name:  "valid token",
			token: "good-token",
			setupMocks: func(j *JwtMakerMock) {
				j.On("ParseToken", "good-token").Return(&customjwt.CustomClaims{
					Username: "testuser",
					UserUID:  "550e8400-e29b-41d4-a716-446655440000",
				}, nil).Once()
			},
			wantValid: true,
		},
		{
			name:  "invalid token",
			token: "bad-token",
			setupMocks: func(j *JwtMakerMock) {
				j.On("ParseToken", "bad-token").Return(nil, errors.New("invalid token")).Once()
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(jwtMock)
			svc := services.NewAuthService(new(UserRepoMock), jwtMock)

			user, valid, err := svc.ValidateToken(context.Background(), tt.token)

			if tt.wantValid {
				require.NoError(t, err)
				assert.True(t, valid)
				require.NotNil(t, user)
				assert.Equal(t, "testuser", user.Username)
				assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", user.UID)
			} else {
				require.Error(t, err)
				assert.False(t, valid)
				assert.Nil(t, user)
			}
			jwtMock.AssertExpectations(t)
		})
	}
}
