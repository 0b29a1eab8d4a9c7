package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/vector"
)

// SearchHandler runs a semantic search over the caller's document chunks.
func SearchHandler(c echo.Context) error {
	type searchBody struct {
		Query string `json:"query" validate:"required"`
		Limit int    `json:"limit"`
	}

	type searchResponse struct {
		Message string                `json:"message"`
		Results []vector.SearchResult `json:"results,omitempty"`
	}

	data := new(searchBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request body",
		})
	}
	if data.Limit <= 0 {
		data.Limit = 5
	}

	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	embedding, err := app.AiClient.GenerateEmbedding(ctx, []byte(data.Query))
	if err != nil {
		logger.Error("Failed to embed search query", "err", err)
		return c.JSON(http.StatusInternalServerError, searchResponse{
			Message: "Internal server error",
		})
	}

	results, err := app.Vector.Search(ctx, user.Container, embedding, data.Limit)
	if err != nil {
		logger.Error("Failed to search chunks", "err", err)
		return c.JSON(http.StatusInternalServerError, searchResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, searchResponse{
		Message: "Search completed",
		Results: results,
	})
}
