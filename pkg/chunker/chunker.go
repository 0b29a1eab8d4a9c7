package chunker

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1500
	// DefaultChunkOverlap is the number of characters shared between
	// consecutive chunks.
	DefaultChunkOverlap = 50
)

// Chunk is one piece of a split document. Index is 0-based and ascends
// in document order.
type Chunk struct {
	Index int
	Text  string
}

// Chunker splits document text into overlapping chunks using recursive
// character splitting: paragraphs first, then sentences, then words, then
// a hard cut. Splitting is deterministic for identical input and settings.
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
}

// NewChunkerParams contains configuration for creating a Chunker.
// Zero values fall back to the defaults.
type NewChunkerParams struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewChunker creates a Chunker with the given chunk size and overlap.
func NewChunker(params NewChunkerParams) *Chunker {
	size := params.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := params.ChunkOverlap
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " ", ""}),
	)

	return &Chunker{
		splitter: splitter,
	}
}

// Split splits text into chunks. Whitespace-only pieces are dropped and
// the remaining chunks are indexed contiguously from 0.
func (c *Chunker) Split(text string) ([]Chunk, error) {
	pieces, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}

	chunks := make([]Chunk, 0, len(pieces))
	for _, piece := range pieces {
		trimmed := strings.TrimSpace(piece)
		if trimmed == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  trimmed,
		})
	}

	return chunks, nil
}
