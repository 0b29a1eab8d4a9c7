package server

import (
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Auth routes
	e.POST("/auth/register", routes.RegisterHandler)
	e.POST("/auth/login", routes.LoginHandler)

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Document routes
	apiRoutes.POST("/files", routes.UploadFilesHandler)
	apiRoutes.GET("/documents", routes.GetDocumentsHandler)
	apiRoutes.GET("/documents/:name/graph", routes.GetDocumentGraphHandler)
	apiRoutes.DELETE("/documents/:name", routes.DeleteDocumentHandler)

	// Search routes
	apiRoutes.POST("/search", routes.SearchHandler)

	// Chat routes
	apiRoutes.POST("/chat/stream", routes.ChatStreamHandler)
	apiRoutes.GET("/chats", routes.GetChatsHandler)
	apiRoutes.GET("/chats/:chat_id", routes.GetChatHandler)
	apiRoutes.DELETE("/chats/:chat_id", routes.DeleteChatHandler)

	// Account routes
	apiRoutes.DELETE("/account", routes.DeleteAccountHandler)
}
