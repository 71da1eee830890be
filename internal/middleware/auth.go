package middleware

import (
	"net/http"
	"strings"

	"dental-academy-store/internal/model"
	"dental-academy-store/internal/repository"
	"dental-academy-store/internal/service"

	"github.com/labstack/echo/v4"
)

const UserContextKey = "user"

// AuthMiddleware validates the bearer token and loads the user record into
// the request context. Routes behind it can call UserFromContext.
func AuthMiddleware(authService service.AuthService, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := authService.ParseToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func UserFromContext(c echo.Context) *model.User {
	user, _ := c.Get(UserContextKey).(*model.User)
	return user
}
