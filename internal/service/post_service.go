package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "smapp/internal/errors"
	"smapp/internal/events"
	"smapp/internal/model"
	"smapp/internal/repository"
)

var newID = uuid.NewString

// PostService manages the feed, likes and comments.
type PostService interface {
	Create(ctx context.Context, userID, text string) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, postID string) (*model.Post, error)
	Delete(ctx context.Context, userID, postID string) error
	Like(ctx context.Context, userID, postID string) ([]model.Like, error)
	Unlike(ctx context.Context, userID, postID string) ([]model.Like, error)
	Comment(ctx context.Context, userID, postID, text string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) ([]model.Comment, error)
}

type postService struct {
	repo      repository.PostRepository
	users     UserService
	publisher events.Publisher
}

// NewPostService creates a new post service.
func NewPostService(repo repository.PostRepository, users UserService, publisher events.Publisher) PostService {
	return &postService{repo: repo, users: users, publisher: publisher}
}

// Create stores a post stamped with the author's current name and avatar.
func (s *postService) Create(ctx context.Context, userID, text string) (*model.Post, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	post.PrepareInsert()

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	publish(ctx, s.publisher, events.PostCreated, userID, map[string]string{"post_id": post.ID})
	return post, nil
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

func (s *postService) Get(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// Delete removes a post owned by userID.
func (s *postService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.ErrNotAuthorized
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	publish(ctx, s.publisher, events.PostDeleted, userID, map[string]string{"post_id": postID})
	return nil
}

func (s *postService) Like(ctx context.Context, userID, postID string) ([]model.Like, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(userID) {
		return nil, apperrors.ErrAlreadyLiked
	}
	post.AddLike(userID)
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	publish(ctx, s.publisher, events.PostLiked, userID, map[string]string{"post_id": postID})
	return post.Likes, nil
}

func (s *postService) Unlike(ctx context.Context, userID, postID string) ([]model.Like, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.RemoveLike(userID) {
		return nil, apperrors.ErrNotLiked
	}
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	publish(ctx, s.publisher, events.PostUnliked, userID, map[string]string{"post_id": postID})
	return post.Likes, nil
}

// Comment prepends a comment by userID and returns the updated comment list.
func (s *postService) Comment(ctx context.Context, userID, postID, text string) ([]model.Comment, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:     newID(),
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now().UTC(),
	}
	post.Comments = append([]model.Comment{comment}, post.Comments...)
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	publish(ctx, s.publisher, events.PostCommented, userID, map[string]string{
		"post_id":    postID,
		"comment_id": comment.ID,
	})
	return post.Comments, nil
}

// DeleteComment removes a comment written by userID.
func (s *postService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]model.Comment, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	i := post.CommentIndex(commentID)
	if i < 0 {
		return nil, apperrors.ErrCommentNotFound
	}
	if post.Comments[i].UserID != userID {
		return nil, apperrors.ErrNotAuthorized
	}
	post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	publish(ctx, s.publisher, events.CommentDeleted, userID, map[string]string{
		"post_id":    postID,
		"comment_id": commentID,
	})
	return post.Comments, nil
}
