package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vortex/wordcore/internal/handler"
	"github.com/vortex/wordcore/internal/packaging"
	"github.com/vortex/wordcore/internal/service"
)

// mockService implements service.PackagingService for testing handlers.
type mockService struct {
	openFn     func([]byte) (*packaging.Summary, error)
	roundTrip  func([]byte) ([]byte, error)
	validateFn func([]byte) (*service.ValidationResult, error)
}

func (m *mockService) Open(data []byte) (*packaging.Summary, error) {
	if m.openFn != nil {
		return m.openFn(data)
	}
	return &packaging.Summary{SectionCount: 1, HasStyles: true}, nil
}

func (m *mockService) RoundTrip(data []byte) ([]byte, error) {
	if m.roundTrip != nil {
		return m.roundTrip(data)
	}
	return data, nil
}

func (m *mockService) Validate(data []byte) (*service.ValidationResult, error) {
	if m.validateFn != nil {
		return m.validateFn(data)
	}
	return &service.ValidationResult{
		Info:         &packaging.Summary{SectionCount: 1},
		OriginalSize: len(data),
		OutputSize:   len(data),
		Success:      true,
	}, nil
}

func newMultipartRequest(t *testing.T, url string, fileData []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "test.docx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(fileData); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", body["status"])
	}
}

func TestRoundTripHandler_ReturnsDocx(t *testing.T) {
	t.Parallel()
	testData := []byte("fake-docx-bytes")
	svc := &mockService{
		roundTrip: func(data []byte) ([]byte, error) {
			return data, nil
		},
	}
	h := handler.NewPackagingHandler(svc)

	req := newMultipartRequest(t, "/api/v1/documents/roundtrip", testData)
	rec := httptest.NewRecorder()

	h.RoundTrip(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	ct := rec.Header().Get("Content-Type")
	expected := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	if ct != expected {
		t.Errorf("expected content-type %s, got %s", expected, ct)
	}

	body, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(body, testData) {
		t.Error("response body doesn't match input")
	}
}

func TestValidateHandler_Success(t *testing.T) {
	t.Parallel()
	svc := &mockService{}
	h := handler.NewPackagingHandler(svc)

	req := newMultipartRequest(t, "/api/v1/documents/validate", []byte("fake"))
	rec := httptest.NewRecorder()

	h.Validate(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var result service.ValidationResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if !result.Success {
		t.Error("expected success=true")
	}
}

func TestSessionOpenHandler_NoFile(t *testing.T) {
	t.Parallel()
	h := handler.NewSessionHandler(service.NewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/open", nil)
	req.Header.Set("Content-Type", "multipart/form-data")
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSessionOpenHandler_InvalidDocx(t *testing.T) {
	t.Parallel()
	h := handler.NewSessionHandler(service.NewStore())

	req := newMultipartRequest(t, "/api/v1/documents/open", []byte("not a zip"))
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestSessionExportHandler_SessionNotFound(t *testing.T) {
	t.Parallel()
	h := handler.NewSessionHandler(service.NewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/export?session_id=nonexistent", nil)
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSessionExportHandler_MissingID(t *testing.T) {
	t.Parallel()
	h := handler.NewSessionHandler(service.NewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/export", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSessionUndoHandler_SessionNotFound(t *testing.T) {
	t.Parallel()
	h := handler.NewSessionHandler(service.NewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/missing/undo", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	h.Undo(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSessionOperationsHandler_UnknownType(t *testing.T) {
	t.Parallel()
	h := handler.NewSessionHandler(service.NewStore())

	body := bytes.NewReader([]byte(`{"type":"not_a_real_op","path":[0]}`))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/missing/operations", body)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	h.Operations(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
