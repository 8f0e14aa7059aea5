package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"smapp/internal/auth"
	"smapp/internal/cache"
	apperrors "smapp/internal/errors"
	"smapp/internal/events"
	"smapp/internal/model"
	"smapp/internal/repository"
)

func newTestAuthService(repo *MockUserRepository, store *MockTokenStore, pub *MockPublisher) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	users := NewUserService(repo, nil)
	return NewAuthService(repo, users, jwtService, store, pub), jwtService
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockPublisher)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "Test@Example.com",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "test@example.com" &&
						u.Name == "Test User" &&
						u.ID != "" &&
						u.Avatar == Gravatar("test@example.com") &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
				})).Return(nil)
				p.On("Publish", mock.Anything, events.UserRegistered, mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:  "user already exists",
			email: "existing@example.com",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:  "duplicate on insert",
			email: "race@example.com",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:  "publish failure does not fail registration",
			email: "quiet@example.com",
			setupMock: func(m *MockUserRepository, p *MockPublisher) {
				m.On("FindByEmail", mock.Anything, "quiet@example.com").Return(nil, repository.ErrNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
				p.On("Publish", mock.Anything, events.UserRegistered, mock.Anything, mock.Anything).Return(errors.New("nats down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockPub := new(MockPublisher)
			tt.setupMock(mockRepo, mockPub)

			service, jwtService := newTestAuthService(mockRepo, new(MockTokenStore), mockPub)
			token, err := service.Register(context.Background(), "Test User", tt.email, "password123")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.NotEmpty(t, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
			mockPub.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{ID: "u1", Email: "test@example.com", PasswordHash: string(hashedPassword)}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "nope-nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service, jwtService := newTestAuthService(mockRepo, new(MockTokenStore), new(MockPublisher))
			token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, "u1", claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	tests := []struct {
		name      string
		revokeErr error
		wantErr   error
	}{
		{name: "revoked"},
		{name: "redis unavailable", revokeErr: cache.ErrUnavailable, wantErr: apperrors.ErrLogoutUnavailable},
		{name: "other failure", revokeErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockTokenStore)
			service, jwtService := newTestAuthService(new(MockUserRepository), mockStore, new(MockPublisher))

			token, err := jwtService.GenerateToken("u1")
			require.NoError(t, err)
			claims, err := jwtService.ValidateToken(token)
			require.NoError(t, err)

			mockStore.On("Revoke", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
				return ttl > 0 && ttl <= time.Hour
			})).Return(tt.revokeErr)

			err = service.Logout(context.Background(), claims)
			switch {
			case tt.revokeErr == nil:
				assert.NoError(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, apperrors.ErrLogoutUnavailable)
			}
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Name: "Ada"}, nil)
	mockRepo.On("FindByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound)

	service, _ := newTestAuthService(mockRepo, new(MockTokenStore), new(MockPublisher))

	user, err := service.CurrentUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	_, err = service.CurrentUser(context.Background(), "gone")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGravatar(t *testing.T) {
	// md5("test@example.com")
	assert.Equal(t,
		"//www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?s=200&r=pg&d=mm",
		Gravatar(" Test@Example.com "))
}
