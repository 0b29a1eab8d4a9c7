package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/ingest"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// CleanupPublisher publishes cleanup tasks onto the cleanup queue.
type CleanupPublisher struct {
	Ch *amqp091.Channel
}

func (p *CleanupPublisher) PublishCleanup(task ingest.CleanupTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup task: %w", err)
	}
	return PublishFIFO(p.Ch, CleanupQueue, body)
}

// CleanupDeps holds the store clients the cleanup worker deletes from.
type CleanupDeps struct {
	Graph  ingest.GraphStore
	Vector ingest.VectorStore
	Blob   ingest.BlobStore
}

// ProcessCleanupMessage retries the compensating deletes listed in a
// cleanup task. A missing document counts as already cleaned. Any step
// that still fails makes the whole message fail so the broker retries it.
func ProcessCleanupMessage(ctx context.Context, deps CleanupDeps, msg string) error {
	var task ingest.CleanupTask
	if err := json.Unmarshal([]byte(msg), &task); err != nil {
		return fmt.Errorf("failed to unmarshal cleanup task: %w", err)
	}
	if task.Container == "" || task.FileName == "" {
		return fmt.Errorf("cleanup task missing container or file name: %s", msg)
	}

	for _, step := range task.Steps {
		var err error
		switch step {
		case ingest.StepGraph:
			_, err = deps.Graph.DeleteDocument(ctx, task.Email, task.FileName, task.Container)
			if errors.Is(err, graphdb.ErrNotFound) {
				err = nil
			}
		case ingest.StepVector:
			err = deps.Vector.DeleteByDocument(ctx, task.Container, task.FileName)
		case ingest.StepBlob:
			err = deps.Blob.Delete(ctx, task.Container, task.FileName)
		default:
			logger.Warn("[Queue] Unknown cleanup step, skipping", "step", step)
			continue
		}

		if err != nil {
			return fmt.Errorf("cleanup step %s failed for %s/%s: %w", step, task.Container, task.FileName, err)
		}
	}

	logger.Info(
		"[Queue] Cleanup completed",
		"container", task.Container,
		"file", task.FileName,
		"steps", task.Steps,
	)

	return nil
}
