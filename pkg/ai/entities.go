package ai

import (
	"context"
	"fmt"
	"strings"
)

// ExtractEntities asks the model for the key entities in one chunk of
// document text and parses the comma-separated reply. The model is asked
// for 2 to 5 labels but the reply is taken as-is; duplicates across
// chunks are preserved.
func ExtractEntities(ctx context.Context, client Client, chunk string) ([]string, error) {
	prompt := fmt.Sprintf(EntityExtractionPrompt, chunk)

	reply, err := client.GenerateCompletion(ctx, prompt, WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}

	return ParseEntityList(reply), nil
}

// ParseEntityList splits a comma-separated model reply into entity labels.
// Items are trimmed and empty items dropped; no other normalization is
// applied.
func ParseEntityList(reply string) []string {
	parts := strings.Split(reply, ",")

	entities := make([]string, 0, len(parts))
	for _, part := range parts {
		entity := strings.TrimSpace(part)
		if entity == "" {
			continue
		}
		entities = append(entities, entity)
	}

	return entities
}
