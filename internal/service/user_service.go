package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"smapp/internal/cache"
	apperrors "smapp/internal/errors"
	"smapp/internal/events"
	"smapp/internal/model"
	"smapp/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService resolves users by id through a read-through cache.
type UserService interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	// Summaries returns the public summary of each existing user, keyed by id.
	Summaries(ctx context.Context, ids []string) (map[string]*model.UserSummary, error)
	Invalidate(ctx context.Context, id string)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

func (s *userService) Summaries(ctx context.Context, ids []string) (map[string]*model.UserSummary, error) {
	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	out := make(map[string]*model.UserSummary, len(users))
	for i := range users {
		out[users[i].ID] = users[i].Summary()
	}
	return out, nil
}

func (s *userService) Invalidate(ctx context.Context, id string) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}

// Gravatar returns the avatar URL for email: 200px, rated pg, mystery-man fallback.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

// publish emits a domain event. Delivery failures are logged, never returned.
func publish(ctx context.Context, pub events.Publisher, event, actorID string, data interface{}) {
	if err := pub.Publish(ctx, event, actorID, data); err != nil {
		slog.WarnContext(ctx, "publish event failed", "event", event, "actor", actorID, "error", err)
	}
}
