package util

import (
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// maxContainerNameLen is the blob store's limit on container names.
const maxContainerNameLen = 63

// NewContainerID generates a per-user storage container name: a random
// UUID with hyphens stripped, lowercased, truncated to the store's limit.
func NewContainerID() string {
	id := strings.ToLower(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if len(id) > maxContainerNameLen {
		id = id[:maxContainerNameLen]
	}
	return id
}

// NewChatID generates an identifier for a chat thread.
func NewChatID() (string, error) {
	return gonanoid.New()
}
