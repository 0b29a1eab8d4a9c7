package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/chunker"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/extract"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/vector"
)

type fakeGraph struct {
	documents     []string
	contentNodes  []int
	entityNodes   []string
	failContentAt int
	failDocument  bool
	deleteCalls   int
	deleteErr     error
}

func (g *fakeGraph) CreateDocumentNode(ctx context.Context, email, name, container string) error {
	if g.failDocument {
		return errors.New("graph unavailable")
	}
	g.documents = append(g.documents, name)
	return nil
}

func (g *fakeGraph) CreateContentNode(ctx context.Context, email, name, container string, index int, text string) error {
	if g.failContentAt == index {
		return errors.New("graph unavailable")
	}
	g.contentNodes = append(g.contentNodes, index)
	return nil
}

func (g *fakeGraph) CreateEntityNode(ctx context.Context, email, name, container string, index int, entity string) error {
	g.entityNodes = append(g.entityNodes, entity)
	return nil
}

func (g *fakeGraph) DeleteDocument(ctx context.Context, email, name, container string) (int, error) {
	g.deleteCalls++
	if len(g.documents) == 0 {
		return 0, graphdb.ErrNotFound
	}
	if g.deleteErr != nil {
		return 0, g.deleteErr
	}
	deleted := len(g.documents) + len(g.contentNodes) + len(g.entityNodes)
	g.documents = nil
	g.contentNodes = nil
	g.entityNodes = nil
	return deleted, nil
}

type fakeVector struct {
	records     []vector.ChunkRecord
	addErr      error
	deleteCalls int
	deleteErr   error
}

func (v *fakeVector) AddChunks(ctx context.Context, records []vector.ChunkRecord) error {
	if v.addErr != nil {
		return v.addErr
	}
	v.records = append(v.records, records...)
	return nil
}

func (v *fakeVector) DeleteByDocument(ctx context.Context, container, fileName string) error {
	v.deleteCalls++
	return v.deleteErr
}

type fakeBlob struct {
	putCalls    int
	putErr      error
	deleteCalls int
}

func (b *fakeBlob) Put(ctx context.Context, container, fileName string, content []byte) error {
	if b.putErr != nil {
		return b.putErr
	}
	b.putCalls++
	return nil
}

func (b *fakeBlob) Delete(ctx context.Context, container, fileName string) error {
	b.deleteCalls++
	return nil
}

// pipeSplitter splits on "|" so tests control chunk boundaries exactly.
type pipeSplitter struct{}

func (pipeSplitter) Split(text string) ([]chunker.Chunk, error) {
	parts := strings.Split(text, "|")
	chunks := make([]chunker.Chunk, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, chunker.Chunk{Index: len(chunks), Text: part})
	}
	return chunks, nil
}

type fakeExtractor struct {
	calls  int
	failAt int
}

func (e *fakeExtractor) ExtractEntities(ctx context.Context, chunk string) ([]string, error) {
	e.calls++
	if e.failAt > 0 && e.calls == e.failAt {
		return nil, errors.New("model unavailable")
	}
	return []string{chunk + "-entity"}, nil
}

type fakeEmbedder struct {
	err error
}

func (e *fakeEmbedder) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeCleanup struct {
	tasks []CleanupTask
}

func (c *fakeCleanup) PublishCleanup(task CleanupTask) error {
	c.tasks = append(c.tasks, task)
	return nil
}

func newTestOrchestrator() (*Orchestrator, *fakeGraph, *fakeVector, *fakeBlob, *fakeCleanup) {
	graph := &fakeGraph{failContentAt: -1}
	vec := &fakeVector{}
	blob := &fakeBlob{}
	cleanup := &fakeCleanup{}
	o := &Orchestrator{
		Graph:     graph,
		Vector:    vec,
		Blob:      blob,
		Chunks:    pipeSplitter{},
		Extractor: &fakeExtractor{},
		Embedder:  &fakeEmbedder{},
		Cleanup:   cleanup,
	}
	return o, graph, vec, blob, cleanup
}

func testParams() Params {
	return Params{
		Email:     "user@example.com",
		Container: "abc123",
		FileName:  "notes.txt",
		Content:   []byte("alpha|beta|gamma"),
	}
}

func TestRunHappyPath(t *testing.T) {
	o, graph, vec, blob, _ := newTestOrchestrator()

	state, err := o.Run(context.Background(), testParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != StateBlobUploaded {
		t.Fatalf("Run() state = %q, want %q", state, StateBlobUploaded)
	}

	if len(graph.documents) != 1 {
		t.Errorf("document nodes = %d, want 1", len(graph.documents))
	}
	if len(graph.contentNodes) != 3 {
		t.Errorf("content nodes = %d, want 3", len(graph.contentNodes))
	}
	if len(graph.entityNodes) != 3 {
		t.Errorf("entity nodes = %d, want 3", len(graph.entityNodes))
	}
	if len(vec.records) != 3 {
		t.Errorf("vector records = %d, want 3", len(vec.records))
	}
	for i, record := range vec.records {
		if record.ChunkIndex != i {
			t.Errorf("record %d chunk index = %d, want %d", i, record.ChunkIndex, i)
		}
	}
	if blob.putCalls != 1 {
		t.Errorf("blob puts = %d, want 1", blob.putCalls)
	}
	// One delete each from the replace step, none from rollback.
	if graph.deleteCalls != 1 || vec.deleteCalls != 1 {
		t.Errorf("unexpected rollback: graph deletes = %d, vector deletes = %d, want 1 each", graph.deleteCalls, vec.deleteCalls)
	}
}

func TestRunReplacesExistingDocument(t *testing.T) {
	o, graph, vec, _, _ := newTestOrchestrator()
	graph.documents = []string{"notes.txt"}
	graph.contentNodes = []int{0, 1}
	graph.entityNodes = []string{"stale-entity"}

	state, err := o.Run(context.Background(), testParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != StateBlobUploaded {
		t.Fatalf("Run() state = %q, want %q", state, StateBlobUploaded)
	}

	if len(graph.documents) != 1 {
		t.Errorf("document nodes = %d, want 1", len(graph.documents))
	}
	if len(graph.contentNodes) != 3 {
		t.Errorf("content nodes = %d, want 3 fresh nodes", len(graph.contentNodes))
	}
	for _, entity := range graph.entityNodes {
		if entity == "stale-entity" {
			t.Error("stale entity survived the replacing upload")
		}
	}
	if graph.deleteCalls != 1 {
		t.Errorf("graph deletes = %d, want 1 replace delete", graph.deleteCalls)
	}
	if vec.deleteCalls != 1 {
		t.Errorf("vector deletes = %d, want 1 replace delete", vec.deleteCalls)
	}
}

func TestRunRejectsUnsupportedExtension(t *testing.T) {
	o, graph, vec, blob, _ := newTestOrchestrator()

	params := testParams()
	params.FileName = "report.exe"

	state, err := o.Run(context.Background(), params)
	if !errors.Is(err, extract.ErrUnsupportedType) {
		t.Fatalf("Run() error = %v, want ErrUnsupportedType", err)
	}
	if state != StateStarted {
		t.Errorf("Run() state = %q, want %q", state, StateStarted)
	}
	if len(graph.documents) != 0 || len(vec.records) != 0 || blob.putCalls != 0 {
		t.Error("stores were touched before the extension check rejected the file")
	}
	if graph.deleteCalls != 0 || vec.deleteCalls != 0 {
		t.Error("deletes ran for a rejected file")
	}
}

func TestRunNoRollbackWhenDocumentCreateFails(t *testing.T) {
	o, graph, vec, _, _ := newTestOrchestrator()
	graph.failDocument = true

	state, err := o.Run(context.Background(), testParams())
	if err == nil {
		t.Fatal("Run() error = nil, want failure")
	}
	if state != StateStarted {
		t.Errorf("Run() state = %q, want %q", state, StateStarted)
	}
	// Only the replace-step deletes, no rollback after the failed create.
	if graph.deleteCalls != 1 || vec.deleteCalls != 1 {
		t.Errorf("rollback ran even though nothing was written: graph deletes = %d, vector deletes = %d", graph.deleteCalls, vec.deleteCalls)
	}
}

func TestRunRollsBackOnEntityFailure(t *testing.T) {
	o, graph, vec, blob, cleanup := newTestOrchestrator()
	o.Extractor = &fakeExtractor{failAt: 2}

	state, err := o.Run(context.Background(), testParams())
	if err == nil {
		t.Fatal("Run() error = nil, want failure")
	}
	if state != StateRolledBack {
		t.Errorf("Run() state = %q, want %q", state, StateRolledBack)
	}
	if graph.deleteCalls != 2 {
		t.Errorf("graph deletes = %d, want replace + rollback", graph.deleteCalls)
	}
	if vec.deleteCalls != 2 {
		t.Errorf("vector deletes = %d, want replace + rollback", vec.deleteCalls)
	}
	if blob.putCalls != 0 {
		t.Errorf("blob puts = %d, want 0", blob.putCalls)
	}
	if len(cleanup.tasks) != 0 {
		t.Errorf("cleanup tasks = %d, want 0", len(cleanup.tasks))
	}
}

func TestRunRollsBackOnVectorFailure(t *testing.T) {
	o, graph, vec, blob, _ := newTestOrchestrator()
	vec.addErr = errors.New("connection refused")

	state, err := o.Run(context.Background(), testParams())
	if err == nil {
		t.Fatal("Run() error = nil, want failure")
	}
	if state != StateRolledBack {
		t.Errorf("Run() state = %q, want %q", state, StateRolledBack)
	}
	if graph.deleteCalls != 2 {
		t.Errorf("graph deletes = %d, want replace + rollback", graph.deleteCalls)
	}
	if blob.putCalls != 0 {
		t.Errorf("blob puts = %d, want 0", blob.putCalls)
	}
}

func TestRunRollsBackOnBlobFailure(t *testing.T) {
	o, graph, vec, _, _ := newTestOrchestrator()
	blob := &fakeBlob{putErr: errors.New("access denied")}
	o.Blob = blob

	state, err := o.Run(context.Background(), testParams())
	if err == nil {
		t.Fatal("Run() error = nil, want failure")
	}
	if state != StateRolledBack {
		t.Errorf("Run() state = %q, want %q", state, StateRolledBack)
	}
	if len(vec.records) != 3 {
		t.Errorf("vector records before rollback = %d, want 3", len(vec.records))
	}
	if graph.deleteCalls != 2 || vec.deleteCalls != 2 {
		t.Errorf("rollback deletes: graph = %d, vector = %d, want replace + rollback each", graph.deleteCalls, vec.deleteCalls)
	}
}

func TestRunPublishesCleanupWhenRollbackFails(t *testing.T) {
	o, graph, vec, _, cleanup := newTestOrchestrator()
	vec.addErr = errors.New("connection refused")
	graph.deleteErr = errors.New("graph unavailable")

	state, err := o.Run(context.Background(), testParams())
	if err == nil {
		t.Fatal("Run() error = nil, want failure")
	}
	if state != StateRolledBack {
		t.Errorf("Run() state = %q, want %q", state, StateRolledBack)
	}
	if len(cleanup.tasks) != 1 {
		t.Fatalf("cleanup tasks = %d, want 1", len(cleanup.tasks))
	}

	task := cleanup.tasks[0]
	if task.Container != "abc123" || task.FileName != "notes.txt" {
		t.Errorf("cleanup task = %+v, want container abc123 and file notes.txt", task)
	}
	if len(task.Steps) != 1 || task.Steps[0] != StepGraph {
		t.Errorf("cleanup steps = %v, want [%s]", task.Steps, StepGraph)
	}
}
