package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/ingest"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/internal/server/middleware"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/chunker"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/graphdb"
	"github.com/joeyoneill/CapHackathon2024-Backend-1/pkg/vector"
)

type uploadGraph struct {
	failCreate bool
	documents  int
}

func (g *uploadGraph) CreateDocumentNode(ctx context.Context, email, name, container string) error {
	if g.failCreate {
		return errors.New("graph unavailable")
	}
	g.documents++
	return nil
}

func (g *uploadGraph) CreateContentNode(ctx context.Context, email, name, container string, index int, text string) error {
	return nil
}

func (g *uploadGraph) CreateEntityNode(ctx context.Context, email, name, container string, index int, entity string) error {
	return nil
}

func (g *uploadGraph) DeleteDocument(ctx context.Context, email, name, container string) (int, error) {
	return 0, graphdb.ErrNotFound
}

type uploadVector struct{}

func (v *uploadVector) AddChunks(ctx context.Context, records []vector.ChunkRecord) error {
	return nil
}

func (v *uploadVector) DeleteByDocument(ctx context.Context, container, fileName string) error {
	return nil
}

type uploadBlob struct {
	puts int
}

func (b *uploadBlob) Put(ctx context.Context, container, fileName string, content []byte) error {
	b.puts++
	return nil
}

func (b *uploadBlob) Delete(ctx context.Context, container, fileName string) error {
	return nil
}

type uploadExtractor struct{}

func (e *uploadExtractor) ExtractEntities(ctx context.Context, chunk string) ([]string, error) {
	return []string{"entity"}, nil
}

type uploadEmbedder struct{}

func (e *uploadEmbedder) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

type uploadResult struct {
	FileName string `json:"file_name"`
	State    string `json:"state"`
	Error    string `json:"error,omitempty"`
}

type uploadBody struct {
	Message string         `json:"message"`
	Files   []uploadResult `json:"files"`
}

func uploadRequest(t *testing.T, files map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for name, content := range files {
		fw, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("failed to build form: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func uploadContext(req *http.Request, rec *httptest.ResponseRecorder, graph *uploadGraph) *middleware.AppContext {
	orchestrator := &ingest.Orchestrator{
		Graph:     graph,
		Vector:    &uploadVector{},
		Blob:      &uploadBlob{},
		Chunks:    chunker.NewChunker(chunker.NewChunkerParams{}),
		Extractor: &uploadExtractor{},
		Embedder:  &uploadEmbedder{},
	}

	e := echo.New()
	c := e.NewContext(req, rec)
	return &middleware.AppContext{
		Context: c,
		App:     &middleware.App{Ingest: orchestrator},
		User:    &middleware.AppUser{Email: "user@example.com", Container: "abc123"},
	}
}

func TestUploadFilesHandlerHappyPath(t *testing.T) {
	req, rec := uploadRequest(t, map[string]string{"notes.txt": "alpha beta gamma"})
	cc := uploadContext(req, rec, &uploadGraph{})

	if err := UploadFilesHandler(cc); err != nil {
		t.Fatalf("UploadFilesHandler() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body uploadBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Files) != 1 {
		t.Fatalf("file results = %d, want 1", len(body.Files))
	}
	if body.Files[0].State != string(ingest.StateBlobUploaded) {
		t.Errorf("file state = %q, want %q", body.Files[0].State, ingest.StateBlobUploaded)
	}
}

func TestUploadFilesHandlerRejectsUnsupportedTypeWith400(t *testing.T) {
	req, rec := uploadRequest(t, map[string]string{"malware.exe": "MZ"})
	cc := uploadContext(req, rec, &uploadGraph{})

	if err := UploadFilesHandler(cc); err != nil {
		t.Fatalf("UploadFilesHandler() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body uploadBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Files) != 1 || body.Files[0].Error == "" {
		t.Errorf("expected a per-file error for the rejected upload, got %+v", body.Files)
	}
}

func TestUploadFilesHandlerReturns500OnStoreFailure(t *testing.T) {
	req, rec := uploadRequest(t, map[string]string{"notes.txt": "alpha beta gamma"})
	cc := uploadContext(req, rec, &uploadGraph{failCreate: true})

	if err := UploadFilesHandler(cc); err != nil {
		t.Fatalf("UploadFilesHandler() error = %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestUploadFilesHandlerRejectsEmptyForm(t *testing.T) {
	req, rec := uploadRequest(t, map[string]string{})
	cc := uploadContext(req, rec, &uploadGraph{})

	if err := UploadFilesHandler(cc); err != nil {
		t.Fatalf("UploadFilesHandler() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
