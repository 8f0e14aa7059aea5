package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "smapp/internal/errors"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "x-auth-token"

const claimsContextKey = "user"

var (
	errTokenMissing = apperrors.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied.")
	errTokenInvalid = apperrors.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
)

// Middleware rejects requests without a valid, unrevoked token and stores the
// decoded claims on the context.
func Middleware(jwtService *JWTService, tokenStore TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + TokenHeader,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			revoked, err := tokenStore.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				return nil, err
			}
			if revoked {
				return nil, ErrInvalidToken
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) || errors.Is(err, echojwt.ErrJWTMissing) {
				return errTokenMissing
			}
			return errTokenInvalid
		},
	})
}

// ClaimsFrom returns the claims stored by Middleware, or nil on public routes.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// UserID returns the authenticated user's id, or "" on public routes.
func UserID(c echo.Context) string {
	if claims := ClaimsFrom(c); claims != nil {
		return claims.UserID
	}
	return ""
}
