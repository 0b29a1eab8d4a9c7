package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/ingest"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/ai"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/vector"
)

// AppUser is the authenticated caller, resolved by AuthMiddleware.
type AppUser struct {
	Email     string
	Container string
}

// App bundles the shared clients every handler reaches through the
// request context.
type App struct {
	DBConn    *pgxpool.Pool
	Queue     *amqp091.Channel
	S3        *s3.Client
	Graph     *graphdb.Client
	Vector    *vector.Store
	AiClient  ai.Client
	Ingest    *ingest.Orchestrator
	JWTSecret string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
