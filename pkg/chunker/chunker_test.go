package chunker

import (
	"strings"
	"testing"
)

func TestSplitLongText(t *testing.T) {
	c := NewChunker(NewChunkerParams{ChunkSize: 1500, ChunkOverlap: 50})

	// ~3400 characters of uniform prose should land in 3 chunks.
	text := strings.TrimSpace(strings.Repeat("word ", 680))

	chunks, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Fatalf("expected index %d, got %d", i, chunk.Index)
		}
		if len(chunk.Text) > 1500 {
			t.Fatalf("chunk %d exceeds size limit: %d chars", i, len(chunk.Text))
		}
		if strings.TrimSpace(chunk.Text) == "" {
			t.Fatalf("chunk %d is empty", i)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	c := NewChunker(NewChunkerParams{ChunkSize: 200, ChunkOverlap: 20})

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)

	first, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	second, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitShortText(t *testing.T) {
	c := NewChunker(NewChunkerParams{})

	chunks, err := c.Split("just a short note")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Index != 0 {
		t.Fatalf("expected index 0, got %d", chunks[0].Index)
	}
	if chunks[0].Text != "just a short note" {
		t.Fatalf("unexpected chunk text: %q", chunks[0].Text)
	}
}

func TestSplitEmptyText(t *testing.T) {
	c := NewChunker(NewChunkerParams{})

	for _, input := range []string{"", "   ", "\n\n\t"} {
		chunks, err := c.Split(input)
		if err != nil {
			t.Fatalf("Split(%q) failed: %v", input, err)
		}
		if len(chunks) != 0 {
			t.Fatalf("expected no chunks for %q, got %d", input, len(chunks))
		}
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	c := NewChunker(NewChunkerParams{ChunkSize: 60, ChunkOverlap: 0})

	text := "First paragraph with some text.\n\nSecond paragraph with more text."

	chunks, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0].Text, "First paragraph") {
		t.Fatalf("unexpected first chunk: %q", chunks[0].Text)
	}
	if !strings.HasPrefix(chunks[1].Text, "Second paragraph") {
		t.Fatalf("unexpected second chunk: %q", chunks[1].Text)
	}
}
