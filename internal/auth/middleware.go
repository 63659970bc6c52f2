package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
)

// UserContextKey is where the middleware stores the resolved user.
const UserContextKey = "auth_user"

// Middleware returns an Echo middleware that resolves the bearer token from
// the Authorization header and injects the authenticated user into the
// request context. Requests without a resolvable token get a 401.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			plaintext, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || plaintext == "" {
				return unauthenticated(c)
			}

			user, err := tokens.Resolve(c.Request().Context(), plaintext)
			if err != nil {
				return unauthenticated(c)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user placed by Middleware.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(UserContextKey).(*model.User)
	return user, ok
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, apperrors.MessageResponse{
		Message: apperrors.ErrUnauthenticated.Error(),
	})
}
