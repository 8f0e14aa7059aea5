package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smapp/internal/service"
)

// UserHandler handles registration.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=8" msg:"Please enter a password with 8 or more characters."`
}

// Test godoc
// @Summary Test route
// @Tags users
// @Produce plain
// @Success 200 {string} string "user route"
// @Router /users [get]
func (h *UserHandler) Test(c echo.Context) error {
	return c.String(http.StatusOK, "user route")
}

// Register godoc
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ValidationResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
