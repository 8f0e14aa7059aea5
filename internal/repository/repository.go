package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smapp/internal/model"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	FindByUsername(ctx context.Context, username string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]model.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users    UserRepository
	Profiles ProfileRepository
	Posts    PostRepository
}

// NewGormStore builds a Store over a GORM connection.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Profiles: NewProfileRepository(db),
		Posts:    NewPostRepository(db),
	}
}

// translate maps GORM errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
