// Package repositorytest holds the behaviour every repository.Store backend must share.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smapp/internal/model"
	"smapp/internal/repository"
)

// Run exercises store against the repository contracts. newStore must return an
// empty store each time it is called.
func Run(t *testing.T, newStore func(t *testing.T) *repository.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("profiles", func(t *testing.T) { testProfiles(t, newStore(t)) })
	t.Run("posts", func(t *testing.T) { testPosts(t, newStore(t)) })
}

func testUsers(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	alice := &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, store.Users.Create(ctx, alice))
	assert.NotEmpty(t, alice.ID)
	assert.False(t, alice.Date.IsZero())

	dup := &model.User{Name: "Other", Email: "alice@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, store.Users.Create(ctx, dup), repository.ErrDuplicate)

	found, err := store.Users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	bob := &model.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash"}
	require.NoError(t, store.Users.Create(ctx, bob))

	users, err := store.Users.FindByIDs(ctx, []string{alice.ID, bob.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, store.Users.Delete(ctx, alice.ID))
	_, err = store.Users.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testProfiles(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	from := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	profile := &model.Profile{
		UserID:   "user-1",
		Username: "Alice",
		Status:   "Developer",
		Skills:   []string{"go", "sql"},
		Social:   model.Social{Twitter: "https://twitter.com/alice"},
		Experience: []model.Experience{
			{ID: "exp-1", Title: "Engineer", Company: "Acme", From: from},
		},
	}
	require.NoError(t, store.Profiles.Create(ctx, profile))
	assert.NotEmpty(t, profile.ID)

	dup := &model.Profile{UserID: "user-1", Status: "Dup"}
	assert.ErrorIs(t, store.Profiles.Create(ctx, dup), repository.ErrDuplicate)

	found, err := store.Profiles.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, found.Skills)
	assert.Equal(t, "https://twitter.com/alice", found.Social.Twitter)
	require.Len(t, found.Experience, 1)
	assert.Equal(t, "Acme", found.Experience[0].Company)
	assert.True(t, from.Equal(found.Experience[0].From))

	found.Education = append(found.Education, model.Education{ID: "edu-1", School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from})
	found.Bio = "hello"
	require.NoError(t, store.Profiles.Update(ctx, found))

	byName, err := store.Profiles.FindByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "hello", byName.Bio)
	require.Len(t, byName.Education, 1)
	assert.Equal(t, "MIT", byName.Education[0].School)

	_, err = store.Profiles.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Profiles.Create(ctx, &model.Profile{UserID: "user-2", Username: "Bob", Status: "Student"}))
	profiles, err := store.Profiles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	require.NoError(t, store.Profiles.DeleteByUserID(ctx, "user-1"))
	_, err = store.Profiles.FindByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testPosts(t *testing.T, store *repository.Store) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	older := &model.Post{UserID: "user-1", Text: "first", Date: base}
	newer := &model.Post{UserID: "user-2", Text: "second", Date: base.Add(time.Hour)}
	require.NoError(t, store.Posts.Create(ctx, older))
	require.NoError(t, store.Posts.Create(ctx, newer))

	posts, err := store.Posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Text, "newest first")

	older.AddLike("user-2")
	older.Comments = append(older.Comments, model.Comment{ID: "c-1", UserID: "user-2", Text: "nice", Date: base})
	require.NoError(t, store.Posts.Update(ctx, older))

	found, err := store.Posts.FindByID(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, found.LikedBy("user-2"))
	require.Len(t, found.Comments, 1)
	assert.Equal(t, "nice", found.Comments[0].Text)

	require.NoError(t, store.Posts.Delete(ctx, newer.ID))
	_, err = store.Posts.FindByID(ctx, newer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Posts.DeleteByUserID(ctx, "user-1"))
	posts, err = store.Posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
