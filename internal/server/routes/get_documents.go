package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

// GetDocumentsHandler lists the caller's ingested documents.
func GetDocumentsHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App

	documents, err := app.Graph.ListDocuments(c.Request().Context(), user.Email)
	if err != nil {
		logger.Error("Failed to list documents", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, documents)
}

// GetDocumentGraphHandler returns a document's graph view: the document
// node plus every content and entity node reachable from it.
func GetDocumentGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		Name string `param:"name" validate:"required"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App

	graph, err := app.Graph.Descendants(c.Request().Context(), user.Email, params.Name, user.Container)
	if errors.Is(err, graphdb.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Document not found"})
	}
	if err != nil {
		logger.Error("Failed to load document graph", "document", params.Name, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, graph)
}
