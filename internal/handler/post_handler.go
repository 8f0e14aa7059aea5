package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smapp/internal/auth"
	"smapp/internal/errors"
	"smapp/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// TextRequest carries the body of a post or comment.
type TextRequest struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body TextRequest true "Post"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ValidationResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postService.Create(c.Request().Context(), auth.UserID(c), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// List godoc
// @Summary Get all posts, newest first
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.MessageResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get post by ID
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param post_id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/{post_id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.postService.Get(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param post_id path string true "Post ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/{post_id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), auth.UserID(c), c.Param("post_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, errors.MessageResponse{Msg: "Post removed."})
}

// Like godoc
// @Summary Like a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param post_id path string true "Post ID"
// @Success 200 {array} model.Like
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/like/{post_id} [put]
func (h *PostHandler) Like(c echo.Context) error {
	likes, err := h.postService.Like(c.Request().Context(), auth.UserID(c), c.Param("post_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Unlike godoc
// @Summary Unlike a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param post_id path string true "Post ID"
// @Success 200 {array} model.Like
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/unlike/{post_id} [put]
func (h *PostHandler) Unlike(c echo.Context) error {
	likes, err := h.postService.Unlike(c.Request().Context(), auth.UserID(c), c.Param("post_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Comment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param post_id path string true "Post ID"
// @Param request body TextRequest true "Comment"
// @Success 200 {array} model.Comment
// @Failure 400 {object} errors.ValidationResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/comment/{post_id} [post]
func (h *PostHandler) Comment(c echo.Context) error {
	var req TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comments, err := h.postService.Comment(c.Request().Context(), auth.UserID(c), c.Param("post_id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param post_id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 200 {array} model.Comment
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/comment/{post_id}/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	comments, err := h.postService.DeleteComment(c.Request().Context(), auth.UserID(c), c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
