package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/db"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/util"
)

// AuthMiddleware validates the bearer token and resolves the account it
// belongs to. Handlers behind it can rely on User being set.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		app := c.(*AppContext).App

		email, err := util.ParseAccessToken(token, app.JWTSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		user, err := db.New(app.DBConn).GetUserByEmail(c.Request().Context(), email)
		if errors.Is(err, db.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to resolve account"})
		}

		c.(*AppContext).User = &AppUser{
			Email:     user.Email,
			Container: user.Container,
		}

		return next(c)
	}
}
