package chat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/madhavasok/chatai/pkg/models"
)

// Timeline holds the ordered message sequence for the currently active
// session. Switching sessions fully replaces the timeline; it never merges,
// so the list never shows another session's messages under the current id.
type Timeline struct {
	store Store

	mu        sync.Mutex
	sessionID string
	messages  []models.Message
}

// NewTimeline creates a timeline backed by the given store.
func NewTimeline(store Store) *Timeline {
	return &Timeline{store: store}
}

// Load replaces the whole timeline with a fresh fetch for sessionID, ordered
// oldest first regardless of server response order. On failure the timeline
// is left empty, not stale, and the error wraps ErrLoadFailed.
func (t *Timeline) Load(ctx context.Context, sessionID string) ([]models.Message, error) {
	messages, err := t.store.ListMessages(ctx, sessionID)
	if err != nil {
		t.mu.Lock()
		t.sessionID = sessionID
		t.messages = nil
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	t.mu.Lock()
	t.sessionID = sessionID
	t.messages = messages
	t.mu.Unlock()

	return t.snapshot(), nil
}

// RecordExchange persists one completed question/answer pair and, on
// success, appends it to the in-memory sequence. The append is keyed by the
// sessionID captured at submission time: if the active session has changed
// while the exchange was in flight, the message is persisted but not shown,
// so an abandoned submission cannot corrupt another session's timeline.
func (t *Timeline) RecordExchange(ctx context.Context, sessionID, question, answer string, sources []models.Source) (models.Message, error) {
	if sources == nil {
		sources = []models.Source{}
	}

	message, err := t.store.CreateMessage(ctx, models.CreateMessageRequest{
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Sources:   sources,
	})
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	t.mu.Lock()
	if t.sessionID == sessionID {
		t.messages = append(t.messages, message)
	}
	t.mu.Unlock()

	return message, nil
}

// SessionID returns the id of the currently active session.
func (t *Timeline) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Messages returns a snapshot of the active session's messages, oldest first.
func (t *Timeline) Messages() []models.Message {
	return t.snapshot()
}

func (t *Timeline) snapshot() []models.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}
