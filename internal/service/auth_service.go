package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"smapp/internal/auth"
	"smapp/internal/cache"
	apperrors "smapp/internal/errors"
	"smapp/internal/events"
	"smapp/internal/model"
	"smapp/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and sessions.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	users      UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	publisher  events.Publisher
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	users UserService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	publisher events.Publisher,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		publisher:  publisher,
	}
}

// Register creates a user with a hashed password and returns a session token.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Avatar:       Gravatar(email),
	}
	user.PrepareInsert()

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", apperrors.ErrUserAlreadyExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.publisher, events.UserRegistered, user.ID, user.Summary())

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Login checks the credentials and returns a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the presented token until it would have expired anyway.
// It fails with ErrLogoutUnavailable when no revocation store is reachable.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return nil
	}
	if err := s.tokenStore.Revoke(ctx, claims.ID, s.jwtService.RemainingTTL(claims)); err != nil {
		if errors.Is(err, cache.ErrUnavailable) {
			return fmt.Errorf("revoke token: %w", errors.Join(apperrors.ErrLogoutUnavailable, err))
		}
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// CurrentUser returns the authenticated user.
func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetUser(ctx, userID)
}
