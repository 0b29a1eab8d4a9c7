package vector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ChunkRecord is one embedded document chunk with its source metadata.
type ChunkRecord struct {
	Container  string    `json:"container"`
	FileName   string    `json:"file_name"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"-"`
}

// SearchResult is one similarity hit.
type SearchResult struct {
	Container  string  `json:"container"`
	FileName   string  `json:"file_name"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Distance   float64 `json:"distance"`
}

// Store persists chunk embeddings in Postgres via pgvector. Rows carry
// container and file name metadata so a whole document's entries can be
// removed in one statement during rollback.
type Store struct {
	conn *pgxpool.Pool
}

// NewStore creates a Store over the given connection pool. The pool must
// have pgvector types registered.
func NewStore(conn *pgxpool.Pool) *Store {
	return &Store{
		conn: conn,
	}
}

// AddChunks inserts all records in a single transaction so a document's
// vector entries land atomically.
func (s *Store) AddChunks(ctx context.Context, records []ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, record := range records {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO document_chunks (container, file_name, chunk_index, content, embedding)
			 VALUES ($1, $2, $3, $4, $5)`,
			record.Container,
			record.FileName,
			record.ChunkIndex,
			record.Content,
			pgvector.NewVector(record.Embedding),
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d of %s: %w", record.ChunkIndex, record.FileName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}

	return nil
}

// Search returns the n chunks in the container closest to the query
// embedding by cosine distance.
func (s *Store) Search(ctx context.Context, container string, embedding []float32, n int) ([]SearchResult, error) {
	if n <= 0 {
		n = 5
	}

	rows, err := s.conn.Query(
		ctx,
		`SELECT container, file_name, chunk_index, content, embedding <=> $1 AS distance
		 FROM document_chunks
		 WHERE container = $2
		 ORDER BY distance
		 LIMIT $3`,
		pgvector.NewVector(embedding),
		container,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	results := make([]SearchResult, 0, n)
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Container, &r.FileName, &r.ChunkIndex, &r.Content, &r.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}

	return results, nil
}

// DeleteByDocument removes every vector entry for one document. Deleting
// an absent document is not an error so rollback and cleanup retries stay
// idempotent.
func (s *Store) DeleteByDocument(ctx context.Context, container string, fileName string) error {
	_, err := s.conn.Exec(
		ctx,
		`DELETE FROM document_chunks WHERE container = $1 AND file_name = $2`,
		container,
		fileName,
	)
	if err != nil {
		return fmt.Errorf("failed to delete chunks for %s/%s: %w", container, fileName, err)
	}

	return nil
}

// DeleteByContainer removes every vector entry in a user's container.
func (s *Store) DeleteByContainer(ctx context.Context, container string) error {
	_, err := s.conn.Exec(
		ctx,
		`DELETE FROM document_chunks WHERE container = $1`,
		container,
	)
	if err != nil {
		return fmt.Errorf("failed to delete chunks for container %s: %w", container, err)
	}

	return nil
}
