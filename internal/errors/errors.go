package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when the authenticated user no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound is returned when a user has no profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrExperienceNotFound is returned when an experience id is not on the profile.
	ErrExperienceNotFound = errors.New("experience not found")
	// ErrEducationNotFound is returned when an education id is not on the profile.
	ErrEducationNotFound = errors.New("education not found")
	// ErrGitHubProfileNotFound is returned when GitHub has no such user.
	ErrGitHubProfileNotFound = errors.New("github profile not found")
	// ErrPostNotFound is returned when a post id is unknown.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when a comment id is not on the post.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrAlreadyLiked is returned when a user likes a post twice.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked is returned when a user unlikes a post they never liked.
	ErrNotLiked = errors.New("post not liked")
	// ErrNotAuthorized is returned when a user touches another user's content.
	ErrNotAuthorized = errors.New("user not authorized")
	// ErrLogoutUnavailable is returned when a token could not be revoked.
	ErrLogoutUnavailable = errors.New("token revocation unavailable")
)

// domainErrors holds the status and client message of each sentinel.
var domainErrors = []struct {
	err     error
	status  int
	message string
	list    bool
}{
	{ErrUserAlreadyExists, http.StatusBadRequest, "User already exists", true},
	{ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials", true},
	{ErrProfileNotFound, http.StatusBadRequest, "No profile found for this user.", false},
	{ErrAlreadyLiked, http.StatusBadRequest, "Post already liked by user.", false},
	{ErrNotLiked, http.StatusBadRequest, "Post has not been yet liked by user.", false},
	{ErrNotAuthorized, http.StatusUnauthorized, "User not authorized.", false},
	{ErrUserNotFound, http.StatusNotFound, "User not found.", false},
	{ErrPostNotFound, http.StatusNotFound, "Post not found.", false},
	{ErrCommentNotFound, http.StatusNotFound, "Comment does not exist.", false},
	{ErrExperienceNotFound, http.StatusNotFound, "Experience not found.", false},
	{ErrEducationNotFound, http.StatusNotFound, "Education not found.", false},
	{ErrGitHubProfileNotFound, http.StatusNotFound, "No Github profile found", false},
	{ErrLogoutUnavailable, http.StatusServiceUnavailable, "Logout unavailable, token was not revoked.", false},
}

// ServerErrorMessage is the body of every unexpected failure.
const ServerErrorMessage = "Server Error"

// MessageResponse is the single-message error body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// FieldError is one entry of a validation error list.
type FieldError struct {
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Param    string      `json:"param,omitempty"`
	Location string      `json:"location,omitempty"`
}

// ValidationResponse is the body of a 400 validation failure.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// ValidationError carries the failed fields of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Msg
}

// NewValidationError builds a ValidationError with a single message and no field.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Msg: msg}}}
}

// HTTPError represents an HTTP error with status code and response body.
type HTTPError struct {
	StatusCode int
	Body       interface{}
}

func (e *HTTPError) Error() string {
	switch b := e.Body.(type) {
	case MessageResponse:
		return b.Msg
	case ValidationResponse:
		if len(b.Errors) > 0 {
			return b.Errors[0].Msg
		}
	}
	return http.StatusText(e.StatusCode)
}

// NewHTTPError creates an HTTP error with a message body.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Body: MessageResponse{Msg: message}}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a 500.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: ValidationResponse{Errors: verr.Fields}}
	}
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr
	}

	for _, de := range domainErrors {
		if !errors.Is(err, de.err) {
			continue
		}
		if de.list {
			return &HTTPError{
				StatusCode: de.status,
				Body:       ValidationResponse{Errors: []FieldError{{Msg: de.message}}},
			}
		}
		return NewHTTPError(de.status, de.message)
	}
	return NewHTTPError(http.StatusInternalServerError, ServerErrorMessage)
}
