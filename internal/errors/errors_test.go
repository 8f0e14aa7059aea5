package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   interface{}
	}{
		{
			name:       "duplicate email uses error list",
			err:        ErrUserAlreadyExists,
			wantStatus: http.StatusBadRequest,
			wantBody:   ValidationResponse{Errors: []FieldError{{Msg: "User already exists"}}},
		},
		{
			name:       "wrapped sentinel",
			err:        fmt.Errorf("like post: %w", ErrAlreadyLiked),
			wantStatus: http.StatusBadRequest,
			wantBody:   MessageResponse{Msg: "Post already liked by user."},
		},
		{
			name:       "missing post",
			err:        ErrPostNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   MessageResponse{Msg: "Post not found."},
		},
		{
			name:       "missing profile is a 400",
			err:        ErrProfileNotFound,
			wantStatus: http.StatusBadRequest,
			wantBody:   MessageResponse{Msg: "No profile found for this user."},
		},
		{
			name:       "not owner",
			err:        ErrNotAuthorized,
			wantStatus: http.StatusUnauthorized,
			wantBody:   MessageResponse{Msg: "User not authorized."},
		},
		{
			name:       "logout without revocation store",
			err:        fmt.Errorf("revoke token: %w", ErrLogoutUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   MessageResponse{Msg: "Logout unavailable, token was not revoked."},
		},
		{
			name:       "validation error",
			err:        &ValidationError{Fields: []FieldError{{Msg: "Text is required", Param: "text", Location: "body"}}},
			wantStatus: http.StatusBadRequest,
			wantBody:   ValidationResponse{Errors: []FieldError{{Msg: "Text is required", Param: "text", Location: "body"}}},
		},
		{
			name:       "explicit http error passes through",
			err:        NewHTTPError(http.StatusUnauthorized, "Token is not valid"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   MessageResponse{Msg: "Token is not valid"},
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   MessageResponse{Msg: ServerErrorMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantBody, httpErr.Body)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
	assert.Equal(t, "Status is required", NewValidationError("Status is required").Error())
}
