package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "smapp/internal/errors"
	"smapp/internal/events"
	"smapp/internal/model"
	"smapp/internal/repository"
)

func newTestPostService() (PostService, *MockPostRepository, *MockUserRepository, *MockPublisher) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewPostService(posts, NewUserService(users, nil), pub), posts, users, pub
}

func TestPostService_Create(t *testing.T) {
	service, posts, users, pub := newTestPostService()
	users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Name: "Ada", Avatar: "//avatar"}, nil)
	posts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	post, err := service.Create(context.Background(), "u1", "hello world")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "u1", post.UserID)
	assert.Equal(t, "Ada", post.Name)
	assert.Equal(t, "//avatar", post.Avatar)
	assert.Equal(t, []model.Like{}, post.Likes)
	pub.AssertCalled(t, "Publish", mock.Anything, events.PostCreated, "u1", mock.Anything)
}

func TestPostService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		setupMock     func(*MockPostRepository)
		expectedError error
	}{
		{
			name:   "author deletes",
			userID: "u1",
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(&model.Post{ID: "p1", UserID: "u1"}, nil)
				m.On("Delete", mock.Anything, "p1").Return(nil)
			},
		},
		{
			name:   "someone else",
			userID: "u2",
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(&model.Post{ID: "p1", UserID: "u1"}, nil)
			},
			expectedError: apperrors.ErrNotAuthorized,
		},
		{
			name:   "unknown post",
			userID: "u1",
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, "p1").Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, posts, _, _ := newTestPostService()
			tt.setupMock(posts)

			err := service.Delete(context.Background(), tt.userID, "p1")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			posts.AssertExpectations(t)
		})
	}
}

func TestPostService_LikeUnlike(t *testing.T) {
	service, posts, _, _ := newTestPostService()
	post := &model.Post{ID: "p1", UserID: "u1", Likes: []model.Like{{ID: "l0", UserID: "u9"}}}
	posts.On("FindByID", mock.Anything, "p1").Return(post, nil)
	posts.On("Update", mock.Anything, post).Return(nil)
	ctx := context.Background()

	likes, err := service.Like(ctx, "u2", "p1")
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, "u2", likes[0].UserID, "newest like first")

	_, err = service.Like(ctx, "u2", "p1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)

	likes, err = service.Unlike(ctx, "u2", "p1")
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "u9", likes[0].UserID)

	_, err = service.Unlike(ctx, "u2", "p1")
	assert.ErrorIs(t, err, apperrors.ErrNotLiked)

	posts.AssertNumberOfCalls(t, "Update", 2)
}

func TestPostService_LikeUnknownPost(t *testing.T) {
	service, posts, _, _ := newTestPostService()
	posts.On("FindByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	_, err := service.Like(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostService_Comments(t *testing.T) {
	service, posts, users, _ := newTestPostService()
	post := &model.Post{ID: "p1", UserID: "u1", Comments: []model.Comment{{ID: "c0", UserID: "u9", Text: "first"}}}
	posts.On("FindByID", mock.Anything, "p1").Return(post, nil)
	posts.On("Update", mock.Anything, post).Return(nil)
	users.On("FindByID", mock.Anything, "u2").Return(&model.User{ID: "u2", Name: "Bob", Avatar: "//bob"}, nil)
	ctx := context.Background()

	comments, err := service.Comment(ctx, "u2", "p1", "nice")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "nice", comments[0].Text)
	assert.Equal(t, "Bob", comments[0].Name)
	assert.Equal(t, "//bob", comments[0].Avatar)
	assert.False(t, comments[0].Date.IsZero())
	newCommentID := comments[0].ID

	_, err = service.DeleteComment(ctx, "u2", "p1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)

	_, err = service.DeleteComment(ctx, "u2", "p1", "c0")
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	comments, err = service.DeleteComment(ctx, "u2", "p1", newCommentID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c0", comments[0].ID)
}
