package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/ai"

	"github.com/ollama/ollama/api"
)

// GenerateEmbedding creates a vector embedding for the given input text
// using the configured embedding model.
func (c *AIClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	if len(strings.TrimSpace(string(input))) == 0 {
		return nil, fmt.Errorf("embedding input is empty")
	}

	req := &api.EmbedRequest{
		Model: c.embeddingModel,
		Input: string(input),
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	start := time.Now()
	resp, err := c.Client.Embed(ctx, req)
	if err != nil {
		return nil, err
	}
	duration := time.Since(start).Milliseconds()

	metrics := ai.ModelMetrics{
		InputTokens: resp.PromptEvalCount,
		TotalTokens: resp.PromptEvalCount,
		DurationMs:  duration,
	}
	c.modifyMetrics(metrics)

	if len(resp.Embeddings) != 1 {
		return nil, fmt.Errorf("unexpected embedding result size: got %d want 1", len(resp.Embeddings))
	}

	return resp.Embeddings[0], nil
}
