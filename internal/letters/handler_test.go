package letters

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(fake *fakeLLM) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := &Service{LLM: fake, Model: "gemini-2.0-flash", Repo: NewMemoryRepo()}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func fullPayload() map[string]any {
	return map[string]any{
		"resumeText":     "Built Go services. Cut latency by 40%.",
		"name":           "Budi Santoso",
		"email":          "budi@example.com",
		"phone":          "081234567890",
		"jobTitle":       "Backend Engineer",
		"company":        "PT Maju Jaya",
		"jobDescription": "Design and run backend services.",
	}
}

func TestGenerateEndpointMissingFields(t *testing.T) {
	fake := &fakeLLM{response: "letter"}
	r := newTestRouter(fake)

	payload := fullPayload()
	delete(payload, "phone")
	delete(payload, "company")

	resp := postJSON(t, r, "/api/v1/letters", payload)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Error struct {
			Code    string   `json:"code"`
			Details []string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "missing_field" {
		t.Fatalf("expected code missing_field, got %q", envelope.Error.Code)
	}
	want := []string{"phone", "company"}
	if len(envelope.Error.Details) != 2 || envelope.Error.Details[0] != want[0] || envelope.Error.Details[1] != want[1] {
		t.Fatalf("expected details %v, got %v", want, envelope.Error.Details)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected zero generation calls, got %d", len(fake.calls))
	}
}

func TestGenerateEndpointSuccess(t *testing.T) {
	text := "Dear Hiring Manager,\n\nI am excited to apply.\n\nSincerely,\nBudi Santoso"
	fake := &fakeLLM{response: text}
	r := newTestRouter(fake)

	resp := postJSON(t, r, "/api/v1/letters", fullPayload())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload LetterResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.LetterID == "" {
		t.Fatalf("expected letterId")
	}
	if payload.Letter != text {
		t.Fatalf("unexpected letter text: %q", payload.Letter)
	}
	if payload.Words != 11 {
		t.Fatalf("expected 11 words, got %d", payload.Words)
	}
	if payload.Paragraphs != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", payload.Paragraphs)
	}
}

func TestGenerateEndpointBadLanguage(t *testing.T) {
	r := newTestRouter(&fakeLLM{response: "letter"})
	payload := fullPayload()
	payload["language"] = "french"

	resp := postJSON(t, r, "/api/v1/letters", payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDownloadTxt(t *testing.T) {
	text := "Dear Hiring Manager,\n\nBody.\n\nSincerely,\nBudi Santoso"
	fake := &fakeLLM{response: text}
	r := newTestRouter(fake)

	resp := postJSON(t, r, "/api/v1/letters", fullPayload())
	if resp.Code != http.StatusCreated {
		t.Fatalf("generate: %d", resp.Code)
	}
	var created LetterResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/letters/"+created.LetterID+"/download?format=txt", nil)
	dl := httptest.NewRecorder()
	r.ServeHTTP(dl, req)

	if dl.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", dl.Code)
	}
	if dl.Body.String() != text {
		t.Fatalf("expected letter body, got %q", dl.Body.String())
	}
	disposition := dl.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "Cover_Letter_Budi_Santoso_PT_Maju_Jaya.txt") {
		t.Fatalf("unexpected disposition: %q", disposition)
	}
}

func TestDownloadPDF(t *testing.T) {
	fake := &fakeLLM{response: "Dear Hiring Manager,\n\nBody.\n\nSincerely,\nBudi Santoso"}
	r := newTestRouter(fake)

	resp := postJSON(t, r, "/api/v1/letters", fullPayload())
	var created LetterResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/letters/"+created.LetterID+"/download?format=pdf", nil)
	dl := httptest.NewRecorder()
	r.ServeHTTP(dl, req)

	if dl.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", dl.Code)
	}
	if ct := dl.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(dl.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", dl.Body.Bytes()[:8])
	}
}

func TestDownloadUnknownFormat(t *testing.T) {
	fake := &fakeLLM{response: "letter"}
	r := newTestRouter(fake)

	resp := postJSON(t, r, "/api/v1/letters", fullPayload())
	var created LetterResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/letters/"+created.LetterID+"/download?format=rtf", nil)
	dl := httptest.NewRecorder()
	r.ServeHTTP(dl, req)
	if dl.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", dl.Code)
	}
}

func TestDownloadUnknownLetter(t *testing.T) {
	r := newTestRouter(&fakeLLM{response: "letter"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/letters/does-not-exist/download?format=txt", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
