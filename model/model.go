// Package model defines the core domain types shared across all LegalEase packages.
// It has zero dependencies on other LegalEase packages.
package model

import "strings"

// DocumentSession identifies the single active document on the analysis service.
// DisplayName is set together with DocumentID and is for display only; both are
// empty when no document has been uploaded yet.
type DocumentSession struct {
	DocumentID  string `json:"document_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Active reports whether a document identity has been established.
func (s DocumentSession) Active() bool { return s.DocumentID != "" }

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single entry in a chat transcript. User turns start provisional
// (Answered false) and are marked answered only once the service produced an
// answer for them; an unanswered user turn after a failed ask is a valid,
// observable state.
type Turn struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Content  string `json:"content"`
	Answered bool   `json:"answered,omitempty"`
}

// ClauseAnalysis is one entry of the per-clause risk explanation, in display
// order. Index is the zero-based position in the service response.
type ClauseAnalysis struct {
	Index    int    `json:"index"`
	Analysis string `json:"analysis"`
}

// Badge extracts the risk marker from the analysis text: everything before the
// first "—" separator, e.g. "🟡 Caution". The tier vocabulary is open; an
// analysis without a separator yields the full text as its badge.
func (c ClauseAnalysis) Badge() string {
	head, _, _ := strings.Cut(c.Analysis, "—")
	return strings.TrimSpace(head)
}

// ValidationError is a local, synchronous rejection. It is raised before any
// network I/O and carries the user-facing notice text.
type ValidationError struct {
	Notice string
}

func (e *ValidationError) Error() string { return e.Notice }

// The validation failures the client can raise locally.
var (
	ErrNoDocument    = &ValidationError{Notice: "upload a PDF first"}
	ErrNotPDF        = &ValidationError{Notice: "only PDF files are supported"}
	ErrEmptyQuestion = &ValidationError{Notice: "question must not be empty"}
)

// Truncate shortens a string to maxLen runes, adding "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		r := []rune(s)
		if len(r) <= maxLen {
			return s
		}
		return string(r[:maxLen])
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
