package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	legalease "github.com/7Nouman/LegalEase-Phase1"
	"github.com/7Nouman/LegalEase-Phase1/analysis"
	"github.com/7Nouman/LegalEase-Phase1/model"
	"github.com/7Nouman/LegalEase-Phase1/session"
)

// stubClient is a deterministic analysis service.
type stubClient struct {
	calls      int
	failKind   analysis.Kind // when set, every call fails with this kind
	uploadedID string
}

func (s *stubClient) Upload(_ context.Context, filename string, content io.Reader) (string, error) {
	if !analysis.IsPDF(filename) {
		return "", model.ErrNotPDF
	}
	s.calls++
	if s.failKind == analysis.UploadFailed {
		return "", &analysis.Error{Kind: analysis.UploadFailed, StatusCode: 500}
	}
	io.Copy(io.Discard, content)
	return s.uploadedID, nil
}

func (s *stubClient) Summarize(_ context.Context, docID string) (string, error) {
	s.calls++
	if s.failKind == analysis.SummarizeFailed {
		return "", &analysis.Error{Kind: analysis.SummarizeFailed, StatusCode: 502}
	}
	return "One-liner.\n- b1\n- b2\n- b3", nil
}

func (s *stubClient) ExplainClauses(_ context.Context, docID string) ([]model.ClauseAnalysis, error) {
	s.calls++
	return []model.ClauseAnalysis{
		{Index: 0, Analysis: "A"},
		{Index: 1, Analysis: "B"},
	}, nil
}

func (s *stubClient) Ask(_ context.Context, docID, question string) (string, error) {
	s.calls++
	if s.failKind == analysis.AskFailed {
		return "", &analysis.Error{Kind: analysis.AskFailed}
	}
	return "12 months", nil
}

func testHandler(t *testing.T, client *stubClient) *Handler {
	t.Helper()
	st, err := session.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ws, err := legalease.NewBuilder().WithStore(st).WithClient(client).Build()
	if err != nil {
		t.Fatalf("build workspace: %v", err)
	}
	return New(ws)
}

func uploadRequest(t *testing.T, filename, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte(body))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadCreatesSession(t *testing.T) {
	client := &stubClient{uploadedID: "abc123"}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "contract.pdf", "%PDF-1.4"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var sess model.DocumentSession
	json.Unmarshal(rec.Body.Bytes(), &sess)
	if sess.DocumentID != "abc123" || sess.DisplayName != "contract.pdf" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	json.Unmarshal(rec.Body.Bytes(), &sess)
	if sess.DocumentID != "abc123" {
		t.Fatalf("session not readable back: %+v", sess)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	client := &stubClient{uploadedID: "abc123"}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "notes.txt", "hello"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if client.calls != 0 {
		t.Fatalf("validation failure must not reach the service, got %d calls", client.calls)
	}
}

func TestSummarizeWithoutDocumentIs400(t *testing.T) {
	client := &stubClient{}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/summary", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if client.calls != 0 {
		t.Fatalf("NoDocument must not reach the service, got %d calls", client.calls)
	}

	var resp struct {
		Error string `json:"error"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "upload a PDF first" {
		t.Fatalf("unexpected notice: %q", resp.Error)
	}
}

func TestSummarizeFlow(t *testing.T) {
	client := &stubClient{uploadedID: "abc123"}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "contract.pdf", "%PDF-1.4"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/summary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.HasPrefix(resp.Summary, "One-liner.") {
		t.Fatalf("unexpected summary: %q", resp.Summary)
	}

	// The view state reflects the resolved outcome.
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	var state struct {
		Status  string `json:"status"`
		Summary string `json:"summary"`
	}
	json.Unmarshal(rec.Body.Bytes(), &state)
	if state.Status != "succeeded" || state.Summary == "" {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestRemoteFailureIs502(t *testing.T) {
	client := &stubClient{uploadedID: "abc123", failKind: analysis.SummarizeFailed}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "contract.pdf", "%PDF-1.4"))

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/summary", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "failed to summarize" {
		t.Fatalf("expected generic notice, got %q", resp.Error)
	}
}

func TestClausesPreserveOrder(t *testing.T) {
	client := &stubClient{uploadedID: "abc123"}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "contract.pdf", "%PDF-1.4"))

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/clauses", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Clauses []model.ClauseAnalysis `json:"clauses"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Clauses) != 2 || resp.Clauses[0].Analysis != "A" || resp.Clauses[1].Analysis != "B" {
		t.Fatalf("order not preserved: %+v", resp.Clauses)
	}
}

func TestChatFlow(t *testing.T) {
	client := &stubClient{uploadedID: "abc123"}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "contract.pdf", "%PDF-1.4"))

	body := bytes.NewBufferString(`{"question": "What is the term?"}`)
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answer string `json:"answer"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Answer != "12 months" {
		t.Fatalf("unexpected answer: %q", resp.Answer)
	}

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	var transcript struct {
		Turns []model.Turn `json:"turns"`
	}
	json.Unmarshal(rec.Body.Bytes(), &transcript)
	if len(transcript.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(transcript.Turns))
	}
	if transcript.Turns[0].Role != model.RoleUser || transcript.Turns[1].Role != model.RoleAssistant {
		t.Fatalf("unexpected roles: %+v", transcript.Turns)
	}
}

func TestChatEmptyQuestionIs400(t *testing.T) {
	client := &stubClient{uploadedID: "abc123"}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "contract.pdf", "%PDF-1.4"))
	callsAfterUpload := client.calls

	body := bytes.NewBufferString(`{"question": "   "}`)
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if client.calls != callsAfterUpload {
		t.Fatal("empty question must not reach the service")
	}

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	var transcript struct {
		Turns []model.Turn `json:"turns"`
	}
	json.Unmarshal(rec.Body.Bytes(), &transcript)
	if len(transcript.Turns) != 0 {
		t.Fatalf("empty question must not append turns, got %d", len(transcript.Turns))
	}
}

func TestChatFailureLeavesDanglingTurn(t *testing.T) {
	client := &stubClient{uploadedID: "abc123", failKind: analysis.AskFailed}
	h := testHandler(t, client)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, uploadRequest(t, "contract.pdf", "%PDF-1.4"))

	body := bytes.NewBufferString(`{"question": "What is the term?"}`)
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	var transcript struct {
		Turns []model.Turn `json:"turns"`
	}
	json.Unmarshal(rec.Body.Bytes(), &transcript)
	if len(transcript.Turns) != 1 {
		t.Fatalf("expected the dangling user turn only, got %d", len(transcript.Turns))
	}
	if transcript.Turns[0].Role != model.RoleUser || transcript.Turns[0].Answered {
		t.Fatalf("expected unanswered user turn: %+v", transcript.Turns[0])
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(t, &stubClient{})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}
