// Package mongostore implements the repository interfaces on MongoDB. Profiles
// and posts are stored as single documents with their sub-lists embedded.
package mongostore

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"smapp/internal/db"
	"smapp/internal/repository"
)

// NewStore builds a repository.Store over a Mongo database.
func NewStore(database *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:    &userRepository{coll: database.Collection(db.UsersCollection)},
		Profiles: &profileRepository{coll: database.Collection(db.ProfilesCollection)},
		Posts:    &postRepository{coll: database.Collection(db.PostsCollection)},
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}
