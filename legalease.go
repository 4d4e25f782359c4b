// Package legalease is the top-level entry point for the LegalEase client
// core: the document-session and interaction-orchestration layer in front of
// the remote analysis service.
//
// Use the Builder to compose a Workspace:
//
//	ws, err := legalease.NewBuilder().Build()
//
// Or customize every component:
//
//	ws, err := legalease.NewBuilder().
//	    WithStore(myStore).
//	    WithClient(myClient).
//	    Build()
package legalease

import (
	"context"
	"errors"
	"io"

	"github.com/7Nouman/LegalEase-Phase1/analysis"
	"github.com/7Nouman/LegalEase-Phase1/controller"
	"github.com/7Nouman/LegalEase-Phase1/model"
	"github.com/7Nouman/LegalEase-Phase1/transcript"
)

// Config holds top-level configuration for a Workspace.
type Config struct {
	// ServiceURL is the base address of the analysis service
	// (default "http://localhost:8000").
	ServiceURL string

	// DataDir is the directory for persistent data (default "~/.legalease").
	DataDir string

	// DatabasePath is the full path to the SQLite database file.
	DatabasePath string
}

// SessionStore is the durable home of the active document identity. The
// upload flow is its only writer; every other operation only reads it.
type SessionStore interface {
	SetSession(docID, displayName string)
	GetSession() model.DocumentSession
}

// Builder constructs a Workspace.
type Builder struct {
	config Config
	store  SessionStore
	client analysis.Client
}

// NewBuilder creates a new Builder with sensible defaults.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithConfig sets the workspace configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore sets the session store implementation.
func (b *Builder) WithStore(s SessionStore) *Builder {
	b.store = s
	return b
}

// WithClient sets the analysis service client.
func (b *Builder) WithClient(c analysis.Client) *Builder {
	b.client = c
	return b
}

// Build creates the Workspace. Missing components are filled with defaults.
func (b *Builder) Build() (*Workspace, error) {
	if err := applyDefaults(b); err != nil {
		return nil, err
	}

	w := &Workspace{
		store:      b.store,
		client:     b.client,
		transcript: transcript.New(),
	}
	w.upload = controller.New[model.DocumentSession](nil)
	w.summary = controller.New[string](w.requireDocument)
	w.clauses = controller.New[[]model.ClauseAnalysis](w.requireDocument)
	w.ask = controller.New[string](w.requireDocument)
	return w, nil
}

// Workspace owns the session store, the analysis client, one operation
// controller per view, and the chat transcript. Controllers are independent
// and may have calls in flight concurrently; the session store is their only
// shared state and is written solely by the upload flow.
type Workspace struct {
	store  SessionStore
	client analysis.Client

	upload  *controller.Controller[model.DocumentSession]
	summary *controller.Controller[string]
	clauses *controller.Controller[[]model.ClauseAnalysis]
	ask     *controller.Controller[string]

	transcript *transcript.Transcript
}

func (w *Workspace) requireDocument() error {
	if !w.store.GetSession().Active() {
		return model.ErrNoDocument
	}
	return nil
}

// Session returns the active document session (absent fields if none).
func (w *Workspace) Session() model.DocumentSession {
	return w.store.GetSession()
}

// Transcript returns the chat history in display order.
func (w *Workspace) Transcript() []model.Turn {
	return w.transcript.Turns()
}

// UploadPDF validates the filename locally, then uploads the document and, on
// success, overwrites the session store with the new identity. The filename
// check happens before any state transition or network I/O.
func (w *Workspace) UploadPDF(ctx context.Context, filename string, content io.Reader) (<-chan controller.Snapshot[model.DocumentSession], error) {
	if !analysis.IsPDF(filename) {
		return nil, model.ErrNotPDF
	}

	return w.upload.Invoke(ctx, func(ctx context.Context) (model.DocumentSession, error) {
		docID, err := w.client.Upload(ctx, filename, content)
		if err != nil {
			return model.DocumentSession{}, err
		}
		w.store.SetSession(docID, filename)
		return model.DocumentSession{DocumentID: docID, DisplayName: filename}, nil
	})
}

// Summarize requests the document summary. Without an active document it
// rejects locally with model.ErrNoDocument.
func (w *Workspace) Summarize(ctx context.Context) (<-chan controller.Snapshot[string], error) {
	return w.summary.Invoke(ctx, func(ctx context.Context) (string, error) {
		return w.client.Summarize(ctx, w.store.GetSession().DocumentID)
	})
}

// ExplainClauses requests the per-clause risk explanations.
func (w *Workspace) ExplainClauses(ctx context.Context) (<-chan controller.Snapshot[[]model.ClauseAnalysis], error) {
	return w.clauses.Invoke(ctx, func(ctx context.Context) ([]model.ClauseAnalysis, error) {
		return w.client.ExplainClauses(ctx, w.store.GetSession().DocumentID)
	})
}

// SubmitQuestion drives the ask flow: the user turn is appended to the
// transcript before the remote call starts; the assistant turn is appended
// only when the call succeeds. On failure the user turn stays in the
// transcript unanswered so the same question can be retried.
func (w *Workspace) SubmitQuestion(ctx context.Context, question string) (<-chan controller.Snapshot[string], error) {
	if err := w.requireDocument(); err != nil {
		return nil, err
	}

	turn, err := w.transcript.AppendQuestion(question)
	if err != nil {
		return nil, err
	}

	return w.ask.Invoke(ctx, func(ctx context.Context) (string, error) {
		answer, err := w.client.Ask(ctx, w.store.GetSession().DocumentID, turn.Content)
		if err != nil {
			return "", err
		}
		w.transcript.ConfirmAnswer(turn.ID, answer)
		return answer, nil
	})
}

// UploadState returns the upload controller's current state.
func (w *Workspace) UploadState() controller.Snapshot[model.DocumentSession] {
	return w.upload.Snapshot()
}

// SummaryState returns the summary controller's current state.
func (w *Workspace) SummaryState() controller.Snapshot[string] {
	return w.summary.Snapshot()
}

// ClausesState returns the clauses controller's current state.
func (w *Workspace) ClausesState() controller.Snapshot[[]model.ClauseAnalysis] {
	return w.clauses.Snapshot()
}

// AskState returns the ask controller's current state.
func (w *Workspace) AskState() controller.Snapshot[string] {
	return w.ask.Snapshot()
}

// Close releases the underlying store if it holds resources.
func (w *Workspace) Close() error {
	if c, ok := w.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Notice converts any error from the workspace into the transient,
// user-facing failure text. Server-provided detail never leaks through here.
func Notice(err error) string {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Notice
	}
	var aerr *analysis.Error
	if errors.As(err, &aerr) {
		return aerr.Kind.Notice()
	}
	return "request failed"
}
