// Package transcript maintains the append-only chat history for the
// question-answering view. The transcript is session-local: it starts empty,
// grows only by appends, and is never restored from persistence.
package transcript

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/7Nouman/LegalEase-Phase1/model"
)

// Transcript is an ordered, append-only sequence of chat turns. Insertion
// order is display order. User turns are appended provisionally before the
// remote answer resolves; a turn whose answer never arrives stays in the
// transcript unanswered.
type Transcript struct {
	mu    sync.RWMutex
	turns []model.Turn
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// AppendQuestion trims and validates q, then appends a provisional user turn.
// A question that is empty after trimming is rejected with
// model.ErrEmptyQuestion and nothing is appended.
func (t *Transcript) AppendQuestion(q string) (model.Turn, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return model.Turn{}, model.ErrEmptyQuestion
	}

	turn := model.Turn{
		ID:      uuid.New().String()[:8],
		Role:    model.RoleUser,
		Content: q,
	}

	t.mu.Lock()
	t.turns = append(t.turns, turn)
	t.mu.Unlock()
	return turn, nil
}

// ConfirmAnswer marks the user turn answered and appends the assistant turn
// directly after the current tail. It is called only on a successful ask; on
// failure nothing is confirmed and the user turn stays dangling.
func (t *Transcript) ConfirmAnswer(userTurnID, answer string) (model.Turn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	found := false
	for i := range t.turns {
		if t.turns[i].ID == userTurnID && t.turns[i].Role == model.RoleUser {
			t.turns[i].Answered = true
			found = true
			break
		}
	}
	if !found {
		return model.Turn{}, fmt.Errorf("no user turn %s in transcript", userTurnID)
	}

	turn := model.Turn{
		ID:       uuid.New().String()[:8],
		Role:     model.RoleAssistant,
		Content:  answer,
		Answered: true,
	}
	t.turns = append(t.turns, turn)
	return turn, nil
}

// Turns returns a copy of the transcript in display order.
func (t *Transcript) Turns() []model.Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}
