// Package analysis defines the request/response contract with the remote
// LegalEase analysis service. The client performs no retries and no caching;
// every call is a single request/response exchange and any network failure or
// non-2xx status is reported uniformly as an Error of the operation's kind.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/7Nouman/LegalEase-Phase1/model"
)

// DefaultBaseURL is the analysis service address used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// Kind identifies which remote operation failed.
type Kind string

const (
	UploadFailed    Kind = "upload_failed"
	SummarizeFailed Kind = "summarize_failed"
	ClausesFailed   Kind = "clauses_failed"
	AskFailed       Kind = "ask_failed"
)

// Notice returns the user-facing failure notice for this operation kind.
func (k Kind) Notice() string {
	switch k {
	case UploadFailed:
		return "failed to upload PDF"
	case SummarizeFailed:
		return "failed to summarize"
	case ClausesFailed:
		return "failed to analyze clauses"
	case AskFailed:
		return "failed to answer"
	}
	return "request failed"
}

// Error is a transport-level failure of one remote operation. StatusCode is
// zero when the request never produced a response. Server-provided error
// detail is deliberately not parsed; callers surface Kind.Notice() only.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: service returned %d", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client is the remote capability surface of the analysis service.
type Client interface {
	// Upload sends a PDF and returns the document identity minted by the
	// service. The filename must end in ".pdf" (case-insensitive); anything
	// else is rejected locally with model.ErrNotPDF before any I/O.
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)

	// Summarize returns the short summary text for a document.
	Summarize(ctx context.Context, docID string) (string, error)

	// ExplainClauses returns the per-clause risk explanations in display order.
	ExplainClauses(ctx context.Context, docID string) ([]model.ClauseAnalysis, error)

	// Ask answers a free-form question grounded in the document.
	Ask(ctx context.Context, docID, question string) (string, error)
}

// HTTPClient implements Client over the service's HTTP/JSON endpoints.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// New creates an HTTPClient for the service at baseURL (DefaultBaseURL if
// empty). No request timeout is set; a call either resolves or the caller's
// context is cancelled.
func New(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

// IsPDF reports whether the filename passes the client-side upload check.
func IsPDF(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

func (c *HTTPClient) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if !IsPDF(filename) {
		return "", model.ErrNotPDF
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", &Error{Kind: UploadFailed, Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", &Error{Kind: UploadFailed, Err: err}
	}
	if err := mw.Close(); err != nil {
		return "", &Error{Kind: UploadFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", &Error{Kind: UploadFailed, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result struct {
		DocID string `json:"doc_id"`
	}
	if err := c.do(req, UploadFailed, &result); err != nil {
		return "", err
	}
	return result.DocID, nil
}

func (c *HTTPClient) Summarize(ctx context.Context, docID string) (string, error) {
	var result struct {
		Summary string `json:"summary"`
	}
	if err := c.postJSON(ctx, "/summarize", SummarizeFailed, map[string]string{"doc_id": docID}, &result); err != nil {
		return "", err
	}
	return result.Summary, nil
}

func (c *HTTPClient) ExplainClauses(ctx context.Context, docID string) ([]model.ClauseAnalysis, error) {
	var result struct {
		Clauses []struct {
			Analysis string `json:"analysis"`
		} `json:"clauses"`
	}
	if err := c.postJSON(ctx, "/clauses", ClausesFailed, map[string]string{"doc_id": docID}, &result); err != nil {
		return nil, err
	}

	clauses := make([]model.ClauseAnalysis, len(result.Clauses))
	for i, entry := range result.Clauses {
		clauses[i] = model.ClauseAnalysis{Index: i, Analysis: entry.Analysis}
	}
	return clauses, nil
}

func (c *HTTPClient) Ask(ctx context.Context, docID, question string) (string, error) {
	var result struct {
		Answer string `json:"answer"`
	}
	body := map[string]string{"doc_id": docID, "question": question}
	if err := c.postJSON(ctx, "/qa", AskFailed, body, &result); err != nil {
		return "", err
	}
	return result.Answer, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, kind Kind, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return &Error{Kind: kind, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return &Error{Kind: kind, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, kind, out)
}

func (c *HTTPClient) do(req *http.Request, kind Kind, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	// The contract does not distinguish 4xx from 5xx: any non-2xx is the
	// same failure for the operation kind.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &Error{Kind: kind, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: kind, Err: fmt.Errorf("parsing response: %w", err)}
	}
	return nil
}
