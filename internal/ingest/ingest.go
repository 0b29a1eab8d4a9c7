package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/ai"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/chunker"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/extract"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/logger"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/vector"
)

// State tracks how far an ingestion run has progressed. On failure the
// state names the last completed stage before rollback.
type State string

const (
	StateStarted         State = "STARTED"
	StateDocumentCreated State = "DOCUMENT_CREATED"
	StateContentIndexed  State = "CONTENT_INDEXED"
	StateVectorStored    State = "VECTOR_STORED"
	StateBlobUploaded    State = "BLOB_UPLOADED"
	StateRolledBack      State = "ROLLED_BACK"
)

// GraphStore is the graph side of ingestion: typed node creation and the
// cascading compensating delete.
type GraphStore interface {
	CreateDocumentNode(ctx context.Context, email string, name string, container string) error
	CreateContentNode(ctx context.Context, email string, name string, container string, index int, text string) error
	CreateEntityNode(ctx context.Context, email string, name string, container string, index int, entity string) error
	DeleteDocument(ctx context.Context, email string, name string, container string) (int, error)
}

// VectorStore stores chunk embeddings and supports per-document deletion
// for rollback.
type VectorStore interface {
	AddChunks(ctx context.Context, records []vector.ChunkRecord) error
	DeleteByDocument(ctx context.Context, container string, fileName string) error
}

// BlobStore uploads and deletes raw document blobs.
type BlobStore interface {
	Put(ctx context.Context, container string, fileName string, content []byte) error
	Delete(ctx context.Context, container string, fileName string) error
}

// EntityExtractor pulls entity labels out of one chunk of text.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, chunk string) ([]string, error)
}

// Embedder turns text into an embedding vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error)
}

// ChunkSplitter splits document text into indexed chunks.
type ChunkSplitter interface {
	Split(text string) ([]chunker.Chunk, error)
}

// CleanupPublisher hands failed compensating deletes to the async cleanup
// worker for retry.
type CleanupPublisher interface {
	PublishCleanup(task CleanupTask) error
}

// AIExtractor adapts an ai.Client to the EntityExtractor interface.
type AIExtractor struct {
	Client ai.Client
}

func (e *AIExtractor) ExtractEntities(ctx context.Context, chunk string) ([]string, error) {
	return ai.ExtractEntities(ctx, e.Client, chunk)
}

// Orchestrator runs the per-file ingestion pipeline across the graph,
// vector, and blob stores. All store clients are injected.
type Orchestrator struct {
	Graph     GraphStore
	Vector    VectorStore
	Blob      BlobStore
	Chunks    ChunkSplitter
	Extractor EntityExtractor
	Embedder  Embedder

	// Cleanup may be nil; then failed compensating deletes are only logged.
	Cleanup CleanupPublisher
}

// Params identifies one file to ingest for one user.
type Params struct {
	Email     string
	Container string
	FileName  string
	Content   []byte
}

// Run ingests one file: graph document node, per-chunk content and entity
// nodes, vector entries, then the blob. Uploading a name that already
// exists replaces the earlier document. The first failure stops the run
// and rolls back every store already written; the blob is written last so
// it never needs in-flight compensation. Returns the terminal state.
func (o *Orchestrator) Run(ctx context.Context, params Params) (State, error) {
	state := StateStarted

	// Reject unsupported files before anything touches a store.
	if !extract.Supported(params.FileName) {
		return state, fmt.Errorf("%s: %w", params.FileName, extract.ErrUnsupportedType)
	}

	text, err := extract.Text(params.FileName, params.Content)
	if err != nil {
		return state, err
	}

	chunks, err := o.Chunks.Split(text)
	if err != nil {
		return state, fmt.Errorf("failed to chunk %s: %w", params.FileName, err)
	}
	if len(chunks) == 0 {
		return state, fmt.Errorf("no text extracted from %s", params.FileName)
	}

	// A re-upload replaces the previous document with the same name, so
	// drop its graph subtree and vectors before writing anything.
	if _, err := o.Graph.DeleteDocument(ctx, params.Email, params.FileName, params.Container); err != nil && !errors.Is(err, graphdb.ErrNotFound) {
		return state, fmt.Errorf("failed to replace existing document: %w", err)
	}
	if err := o.Vector.DeleteByDocument(ctx, params.Container, params.FileName); err != nil {
		return state, fmt.Errorf("failed to replace existing document vectors: %w", err)
	}

	if err := o.Graph.CreateDocumentNode(ctx, params.Email, params.FileName, params.Container); err != nil {
		return state, fmt.Errorf("failed to create document node: %w", err)
	}
	state = StateDocumentCreated

	for _, chunk := range chunks {
		if err := o.Graph.CreateContentNode(ctx, params.Email, params.FileName, params.Container, chunk.Index, chunk.Text); err != nil {
			o.rollback(ctx, params)
			return StateRolledBack, fmt.Errorf("failed to create content node %d: %w", chunk.Index, err)
		}

		entities, err := o.Extractor.ExtractEntities(ctx, chunk.Text)
		if err != nil {
			o.rollback(ctx, params)
			return StateRolledBack, fmt.Errorf("failed to extract entities for chunk %d: %w", chunk.Index, err)
		}
		for _, entity := range entities {
			if err := o.Graph.CreateEntityNode(ctx, params.Email, params.FileName, params.Container, chunk.Index, entity); err != nil {
				o.rollback(ctx, params)
				return StateRolledBack, fmt.Errorf("failed to create entity node for chunk %d: %w", chunk.Index, err)
			}
		}
	}
	state = StateContentIndexed

	records := make([]vector.ChunkRecord, 0, len(chunks))
	for _, chunk := range chunks {
		embedding, err := o.Embedder.GenerateEmbedding(ctx, []byte(chunk.Text))
		if err != nil {
			o.rollback(ctx, params)
			return StateRolledBack, fmt.Errorf("failed to embed chunk %d: %w", chunk.Index, err)
		}
		records = append(records, vector.ChunkRecord{
			Container:  params.Container,
			FileName:   params.FileName,
			ChunkIndex: chunk.Index,
			Content:    chunk.Text,
			Embedding:  embedding,
		})
	}
	if err := o.Vector.AddChunks(ctx, records); err != nil {
		o.rollback(ctx, params)
		return StateRolledBack, fmt.Errorf("failed to store vectors: %w", err)
	}
	state = StateVectorStored

	if err := o.Blob.Put(ctx, params.Container, params.FileName, params.Content); err != nil {
		o.rollback(ctx, params)
		return StateRolledBack, fmt.Errorf("failed to upload blob: %w", err)
	}
	state = StateBlobUploaded

	logger.Info(
		"Document ingested",
		"file", params.FileName,
		"container", params.Container,
		"chunks", len(chunks),
	)

	return state, nil
}
