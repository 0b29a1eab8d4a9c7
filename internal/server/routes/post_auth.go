package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/db"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/util"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

const accessTokenTTL = 60 * time.Minute

// RegisterHandler creates a new account with its own storage container and
// graph user node.
func RegisterHandler(c echo.Context) error {
	type registerBody struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	type registerResponse struct {
		Message     string `json:"message"`
		AccessToken string `json:"access_token,omitempty"`
		TokenType   string `json:"token_type,omitempty"`
	}

	data := new(registerBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{
			Message: "Invalid request body",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	user, err := q.CreateUser(ctx, db.CreateUserParams{
		Email:        data.Email,
		PasswordHash: string(hash),
		Container:    util.NewContainerID(),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.JSON(http.StatusConflict, registerResponse{
				Message: "An account with this email already exists",
			})
		}
		logger.Error("Failed to create user", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	if err := app.Graph.CreateUserNode(ctx, user.Email); err != nil {
		logger.Error("Failed to create graph user node", "email", user.Email, "err", err)
		if delErr := q.DeleteUser(ctx, user.Email); delErr != nil {
			logger.Error("Failed to roll back user row", "email", user.Email, "err", delErr)
		}
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	token, err := util.CreateAccessToken(user.Email, app.JWTSecret, accessTokenTTL)
	if err != nil {
		logger.Error("Failed to create access token", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, registerResponse{
		Message:     "Account created successfully",
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// LoginHandler verifies credentials and issues an access token.
func LoginHandler(c echo.Context) error {
	type loginBody struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	type loginResponse struct {
		Message     string `json:"message"`
		AccessToken string `json:"access_token,omitempty"`
		TokenType   string `json:"token_type,omitempty"`
	}

	data := new(loginBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	user, err := q.GetUserByEmail(ctx, data.Email)
	if errors.Is(err, db.ErrUserNotFound) {
		return c.JSON(http.StatusUnauthorized, loginResponse{
			Message: "Invalid email or password",
		})
	}
	if err != nil {
		logger.Error("Failed to look up user", "err", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{
			Message: "Internal server error",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, loginResponse{
			Message: "Invalid email or password",
		})
	}

	token, err := util.CreateAccessToken(user.Email, app.JWTSecret, accessTokenTTL)
	if err != nil {
		logger.Error("Failed to create access token", "err", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "bearer",
	})
}
