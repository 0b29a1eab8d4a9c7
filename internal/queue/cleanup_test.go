package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/ingest"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/vector"
)

type stubGraph struct {
	deleteCalls int
	deleteErr   error
}

func (g *stubGraph) CreateDocumentNode(ctx context.Context, email, name, container string) error {
	return nil
}

func (g *stubGraph) CreateContentNode(ctx context.Context, email, name, container string, index int, text string) error {
	return nil
}

func (g *stubGraph) CreateEntityNode(ctx context.Context, email, name, container string, index int, entity string) error {
	return nil
}

func (g *stubGraph) DeleteDocument(ctx context.Context, email, name, container string) (int, error) {
	g.deleteCalls++
	if g.deleteErr != nil {
		return 0, g.deleteErr
	}
	return 1, nil
}

type stubVector struct {
	deleteCalls int
	deleteErr   error
}

func (v *stubVector) AddChunks(ctx context.Context, records []vector.ChunkRecord) error {
	return nil
}

func (v *stubVector) DeleteByDocument(ctx context.Context, container, fileName string) error {
	v.deleteCalls++
	return v.deleteErr
}

type stubBlob struct {
	deleteCalls int
}

func (b *stubBlob) Put(ctx context.Context, container, fileName string, content []byte) error {
	return nil
}

func (b *stubBlob) Delete(ctx context.Context, container, fileName string) error {
	b.deleteCalls++
	return nil
}

func cleanupMsg(t *testing.T, steps []string) string {
	t.Helper()
	body, err := json.Marshal(ingest.CleanupTask{
		Email:     "user@example.com",
		Container: "abc123",
		FileName:  "notes.txt",
		Steps:     steps,
	})
	if err != nil {
		t.Fatalf("failed to marshal task: %v", err)
	}
	return string(body)
}

func TestProcessCleanupMessageRunsListedSteps(t *testing.T) {
	graph := &stubGraph{}
	vec := &stubVector{}
	blob := &stubBlob{}
	deps := CleanupDeps{Graph: graph, Vector: vec, Blob: blob}

	msg := cleanupMsg(t, []string{ingest.StepGraph, ingest.StepVector})
	if err := ProcessCleanupMessage(context.Background(), deps, msg); err != nil {
		t.Fatalf("ProcessCleanupMessage() error = %v", err)
	}

	if graph.deleteCalls != 1 {
		t.Errorf("graph deletes = %d, want 1", graph.deleteCalls)
	}
	if vec.deleteCalls != 1 {
		t.Errorf("vector deletes = %d, want 1", vec.deleteCalls)
	}
	if blob.deleteCalls != 0 {
		t.Errorf("blob deletes = %d, want 0", blob.deleteCalls)
	}
}

func TestProcessCleanupMessageTreatsMissingDocumentAsDone(t *testing.T) {
	graph := &stubGraph{deleteErr: graphdb.ErrNotFound}
	deps := CleanupDeps{Graph: graph, Vector: &stubVector{}, Blob: &stubBlob{}}

	msg := cleanupMsg(t, []string{ingest.StepGraph})
	if err := ProcessCleanupMessage(context.Background(), deps, msg); err != nil {
		t.Fatalf("ProcessCleanupMessage() error = %v", err)
	}
}

func TestProcessCleanupMessageFailsWhenStepFails(t *testing.T) {
	vec := &stubVector{deleteErr: errors.New("connection refused")}
	deps := CleanupDeps{Graph: &stubGraph{}, Vector: vec, Blob: &stubBlob{}}

	msg := cleanupMsg(t, []string{ingest.StepVector})
	if err := ProcessCleanupMessage(context.Background(), deps, msg); err == nil {
		t.Fatal("ProcessCleanupMessage() error = nil, want failure")
	}
}

func TestProcessCleanupMessageRejectsBadPayload(t *testing.T) {
	deps := CleanupDeps{Graph: &stubGraph{}, Vector: &stubVector{}, Blob: &stubBlob{}}

	if err := ProcessCleanupMessage(context.Background(), deps, "not json"); err == nil {
		t.Fatal("ProcessCleanupMessage() error = nil, want unmarshal failure")
	}
	if err := ProcessCleanupMessage(context.Background(), deps, `{"steps":["graph"]}`); err == nil {
		t.Fatal("ProcessCleanupMessage() error = nil, want validation failure")
	}
}
