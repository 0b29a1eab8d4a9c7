package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/db"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/storage"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

// DeleteAccountHandler removes the caller's account and everything it
// owns: graph tree, vector entries, blob container, and relational rows.
func DeleteAccountHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	failed := false

	if err := app.Graph.DeleteUserTree(ctx, user.Email); err != nil {
		logger.Error("Failed to delete graph user tree", "email", user.Email, "err", err)
		failed = true
	}

	if err := app.Vector.DeleteByContainer(ctx, user.Container); err != nil {
		logger.Error("Failed to delete container vectors", "container", user.Container, "err", err)
		failed = true
	}

	if err := storage.DeleteContainer(ctx, app.S3, user.Container); err != nil {
		logger.Error("Failed to delete blob container", "container", user.Container, "err", err)
		failed = true
	}

	if failed {
		// Keep the account row so the user can retry the deletion.
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Account deletion incomplete, please retry"})
	}

	if err := db.New(app.DBConn).DeleteUser(ctx, user.Email); err != nil {
		logger.Error("Failed to delete user row", "email", user.Email, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}
