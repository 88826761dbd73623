package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voxatu/scribe/internal/domains/transcription"
	"github.com/voxatu/scribe/pkg/Logger"
)

// stubService returns canned results per method.
type stubService struct {
	record     *transcription.Transcription
	processErr error
	getErr     error
	download   *transcription.Download
	dlErr      error
}

func (s *stubService) Create(ctx context.Context, userID string, req transcription.CreateTranscriptionRequest) (*transcription.Transcription, error) {
	if !req.Type.Valid() {
		return nil, &transcription.ValidationError{Field: "type", Reason: "unknown"}
	}
	t := transcription.NewTranscription(userID, req)
	return t, nil
}

func (s *stubService) Get(ctx context.Context, userID string, id uuid.UUID) (*transcription.Transcription, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.record, nil
}

func (s *stubService) List(ctx context.Context, userID string, filters transcription.ListTranscriptionsRequest) ([]transcription.Transcription, int64, error) {
	if s.record == nil {
		return nil, 0, nil
	}
	return []transcription.Transcription{*s.record}, 1, nil
}

func (s *stubService) Update(ctx context.Context, userID string, id uuid.UUID, req transcription.UpdateTranscriptionRequest) (*transcription.Transcription, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.record, nil
}

func (s *stubService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.getErr
}

func (s *stubService) ProcessTranscription(ctx context.Context, userID string, id uuid.UUID) (*transcription.Transcription, error) {
	if s.processErr != nil {
		return nil, s.processErr
	}
	return s.record, nil
}

func (s *stubService) EnqueueProcessing(ctx context.Context, userID string, id uuid.UUID) error {
	return s.processErr
}

func (s *stubService) DownloadText(ctx context.Context, userID string, id uuid.UUID) (*transcription.Download, error) {
	if s.dlErr != nil {
		return nil, s.dlErr
	}
	return s.download, nil
}

func (s *stubService) DownloadAudio(ctx context.Context, userID string, id uuid.UUID) (*transcription.Download, error) {
	if s.dlErr != nil {
		return nil, s.dlErr
	}
	return s.download, nil
}

type memBlob struct{}

func (memBlob) Write(string, []byte) error  { return nil }
func (memBlob) Read(string) ([]byte, error) { return nil, nil }
func (memBlob) Exists(string) bool          { return false }

func newTestRouter(svc transcription.TranscriptionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTranscriptionHandler(svc, memBlob{}, Logger.New(true))
	api := r.Group("/api/v1")
	h.RegisterTranscriptionRoutes(api)
	return r
}

func completedRecord() *transcription.Transcription {
	t := transcription.NewTranscription("default", transcription.CreateTranscriptionRequest{
		Title:     "Demo",
		Type:      transcription.TypeTextToSpeech,
		InputText: "hi",
	})
	t.Status = transcription.StatusCompleted
	return t
}

func TestCreateTranscriptionEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	body, _ := json.Marshal(transcription.CreateTranscriptionRequest{
		Title:     "New record",
		Type:      transcription.TypeTextToSpeech,
		InputText: "say this",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp CreateTranscriptionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if resp.Transcription.Title != "New record" {
		t.Errorf("Unexpected title %s", resp.Transcription.Title)
	}
	if resp.Transcription.Status != transcription.StatusPending {
		t.Errorf("Expected pending status, got %s", resp.Transcription.Status)
	}
}

func TestCreateTranscriptionMissingTitle(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", strings.NewReader(`{"type":"text_to_speech"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing title, got %d", w.Code)
	}
}

func TestProcessEndpointConflict(t *testing.T) {
	router := newTestRouter(&stubService{processErr: transcription.ErrAlreadyProcessing})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/"+uuid.NewString()+"/process", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", w.Code)
	}
}

func TestProcessEndpointNotFound(t *testing.T) {
	router := newTestRouter(&stubService{processErr: transcription.ErrTranscriptionNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/"+uuid.NewString()+"/process", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestProcessEndpointFailureBody(t *testing.T) {
	router := newTestRouter(&stubService{processErr: &transcription.StorageError{Op: "read", Path: "x", Err: context.DeadlineExceeded}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/"+uuid.NewString()+"/process", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	var resp ProcessResultResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if resp.Success {
		t.Error("Expected success=false on processing failure")
	}
	if resp.Message == "" {
		t.Error("Expected failure message in response body")
	}
}

func TestProcessEndpointSuccess(t *testing.T) {
	router := newTestRouter(&stubService{record: completedRecord()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/"+uuid.NewString()+"/process", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The synchronous trigger returns {success, data}.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if _, ok := raw["data"]; !ok {
		t.Fatalf("Expected \"data\" key in response, got %s", w.Body.String())
	}

	var resp ProcessResultResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Errorf("Expected success payload with record data, got %+v", resp)
	}
	if resp.Data.Status != transcription.StatusCompleted {
		t.Errorf("Expected completed record in data, got %s", resp.Data.Status)
	}
}

func TestProcessEndpointInvalidID(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/not-a-uuid/process", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for malformed id, got %d", w.Code)
	}
}

func TestDownloadTextEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{download: &transcription.Download{
		Filename:    "demo.txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte("transcribed"),
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/"+uuid.NewString()+"/download/text", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "demo.txt") {
		t.Errorf("Expected attachment filename, got %q", got)
	}
	if w.Body.String() != "transcribed" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestDownloadMissingArtifact(t *testing.T) {
	router := newTestRouter(&stubService{dlErr: transcription.ErrArtifactNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/"+uuid.NewString()+"/download/audio", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for missing artifact, got %d", w.Code)
	}
}

func TestModelCatalogEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/models", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp ModelCatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if len(resp.SpeechToText) == 0 || len(resp.TextToSpeech) == 0 || len(resp.Languages) == 0 {
		t.Errorf("Expected populated model catalog, got %+v", resp)
	}
}
