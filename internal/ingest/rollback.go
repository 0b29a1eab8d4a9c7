package ingest

import (
	"context"
	"errors"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
)

// Cleanup step names carried in CleanupTask.Steps. Each names one store
// whose compensating delete still needs to succeed.
const (
	StepGraph  = "graph"
	StepVector = "vector"
	StepBlob   = "blob"
)

// CleanupTask asks the cleanup worker to retry compensating deletes that
// failed inline. Steps lists the stores still holding data.
type CleanupTask struct {
	Email     string   `json:"email"`
	Container string   `json:"container"`
	FileName  string   `json:"file_name"`
	Steps     []string `json:"steps"`
}

// rollback undoes every store write for the document. Deletes are
// idempotent, so it always attempts both the graph and vector stores
// regardless of how far the run got. Stores that fail to delete are
// handed to the cleanup worker.
func (o *Orchestrator) rollback(ctx context.Context, params Params) {
	failed := make([]string, 0, 2)

	if _, err := o.Graph.DeleteDocument(ctx, params.Email, params.FileName, params.Container); err != nil && !errors.Is(err, graphdb.ErrNotFound) {
		logger.Error(
			"Rollback failed to delete document from graph",
			"file", params.FileName,
			"container", params.Container,
			"error", err.Error(),
		)
		failed = append(failed, StepGraph)
	}

	if err := o.Vector.DeleteByDocument(ctx, params.Container, params.FileName); err != nil {
		logger.Error(
			"Rollback failed to delete document vectors",
			"file", params.FileName,
			"container", params.Container,
			"error", err.Error(),
		)
		failed = append(failed, StepVector)
	}

	if len(failed) == 0 {
		logger.Info(
			"Ingestion rolled back",
			"file", params.FileName,
			"container", params.Container,
		)
		return
	}

	if o.Cleanup == nil {
		logger.Error(
			"No cleanup publisher configured, stores left inconsistent",
			"file", params.FileName,
			"container", params.Container,
			"steps", failed,
		)
		return
	}

	task := CleanupTask{
		Email:     params.Email,
		Container: params.Container,
		FileName:  params.FileName,
		Steps:     failed,
	}
	if err := o.Cleanup.PublishCleanup(task); err != nil {
		logger.Error(
			"Failed to publish cleanup task",
			"file", params.FileName,
			"container", params.Container,
			"error", err.Error(),
		)
	}
}
