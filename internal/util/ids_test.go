package util

import (
	"strings"
	"testing"
)

func TestNewContainerID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewContainerID()

		if len(id) == 0 || len(id) > 63 {
			t.Fatalf("container id length out of range: %d", len(id))
		}
		if strings.Contains(id, "-") {
			t.Fatalf("container id contains hyphen: %s", id)
		}
		if id != strings.ToLower(id) {
			t.Fatalf("container id not lowercase: %s", id)
		}
		if seen[id] {
			t.Fatalf("duplicate container id: %s", id)
		}
		seen[id] = true
	}
}
