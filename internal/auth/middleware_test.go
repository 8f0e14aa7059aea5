package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "smapp/internal/errors"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestMiddleware(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken("user-42")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		revoked    bool
		wantStatus int
		wantMsg    string
	}{
		{name: "missing token", wantStatus: http.StatusUnauthorized, wantMsg: "No token, authorization denied."},
		{name: "malformed token", header: "abc.def.ghi", wantStatus: http.StatusUnauthorized, wantMsg: "Token is not valid"},
		{name: "revoked token", header: token, revoked: true, wantStatus: http.StatusUnauthorized, wantMsg: "Token is not valid"},
		{name: "valid token", header: token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockTokenStore)
			store.On("IsRevoked", mock.Anything, mock.Anything).Return(tt.revoked, nil).Maybe()

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
			if tt.header != "" {
				req.Header.Set(TokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seenUser string
			next := func(c echo.Context) error {
				seenUser = UserID(c)
				return c.NoContent(http.StatusOK)
			}

			err := Middleware(jwtService, store)(next)(c)
			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, "user-42", seenUser)
				return
			}

			var httpErr *apperrors.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, apperrors.MessageResponse{Msg: tt.wantMsg}, httpErr.Body)
			assert.Empty(t, seenUser)
		})
	}
}

func TestUserID_PublicRoute(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, UserID(c))
	assert.Nil(t, ClaimsFrom(c))
}
