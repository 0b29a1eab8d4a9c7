package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/ingest"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/queue"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/storage"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

// DeleteDocumentHandler removes a document from the graph, vector, and
// blob stores. Stores that fail to delete are retried by the cleanup
// worker.
func DeleteDocumentHandler(c echo.Context) error {
	type deleteDocumentParams struct {
		Name string `param:"name" validate:"required"`
	}

	params := new(deleteDocumentParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	deleted, err := app.Graph.DeleteDocument(ctx, user.Email, params.Name, user.Container)
	failed := make([]string, 0, 3)
	switch {
	case errors.Is(err, graphdb.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Document not found"})
	case err != nil:
		logger.Error("Failed to delete document from graph", "document", params.Name, "err", err)
		failed = append(failed, ingest.StepGraph)
	default:
		logger.Info("Deleted document from graph", "document", params.Name, "nodes", deleted)
	}

	if err := app.Vector.DeleteByDocument(ctx, user.Container, params.Name); err != nil {
		logger.Error("Failed to delete document vectors", "document", params.Name, "err", err)
		failed = append(failed, ingest.StepVector)
	}

	blob := &storage.BlobClient{Client: app.S3}
	if err := blob.Delete(ctx, user.Container, params.Name); err != nil {
		logger.Error("Failed to delete document blob", "document", params.Name, "err", err)
		failed = append(failed, ingest.StepBlob)
	}

	if len(failed) > 0 {
		publisher := &queue.CleanupPublisher{Ch: app.Queue}
		err := publisher.PublishCleanup(ingest.CleanupTask{
			Email:     user.Email,
			Container: user.Container,
			FileName:  params.Name,
			Steps:     failed,
		})
		if err != nil {
			logger.Error("Failed to publish cleanup task", "document", params.Name, "err", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		}
		return c.JSON(http.StatusAccepted, map[string]string{"message": "Document deletion in progress"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}
