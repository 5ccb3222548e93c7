package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/madhavasok/chatai/pkg/models"
)

// callLog records collaborator invocations in order, shared between the
// store and asker fakes so ordering invariants can be asserted.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) indexOf(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, call := range l.calls {
		if call == name {
			return i
		}
	}
	return -1
}

type fakeStore struct {
	log *callLog

	mu       sync.Mutex
	sessions []models.Session
	messages map[string][]models.Message
	nextID   int

	listSessionsErr  error
	createSessionErr error
	listMessagesErr  error
	createMessageErr error

	lastCreateMessage models.CreateMessageRequest
}

func newFakeStore(log *callLog) *fakeStore {
	return &fakeStore{
		log:      log,
		messages: make(map[string][]models.Message),
	}
}

func (s *fakeStore) ListSessions(ctx context.Context) ([]models.Session, error) {
	s.log.record("listSessions")
	if s.listSessionsErr != nil {
		return nil, s.listSessionsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Session, len(s.sessions))
	copy(out, s.sessions)
	return out, nil
}

func (s *fakeStore) CreateSession(ctx context.Context, title string) (models.Session, error) {
	s.log.record("createSession")
	if s.createSessionErr != nil {
		return models.Session{}, s.createSessionErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := time.Now()
	session := models.Session{
		ID:        fmt.Sprintf("s%d", s.nextID),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions = append(s.sessions, session)
	return session, nil
}

func (s *fakeStore) ListMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	s.log.record("listMessages")
	if s.listMessagesErr != nil {
		return nil, s.listMessagesErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages[sessionID]))
	copy(out, s.messages[sessionID])
	return out, nil
}

func (s *fakeStore) CreateMessage(ctx context.Context, req models.CreateMessageRequest) (models.Message, error) {
	s.log.record("createMessage")
	if s.createMessageErr != nil {
		return models.Message{}, s.createMessageErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCreateMessage = req

	found := false
	for i := range s.sessions {
		if s.sessions[i].ID == req.SessionID {
			s.sessions[i].UpdatedAt = time.Now()
			found = true
			break
		}
	}
	if !found {
		return models.Message{}, fmt.Errorf("unknown session %q", req.SessionID)
	}

	message := models.Message{
		ID:        fmt.Sprintf("m%d", len(s.messages[req.SessionID])+1),
		SessionID: req.SessionID,
		Question:  req.Question,
		Answer:    req.Answer,
		Sources:   req.Sources,
		CreatedAt: time.Now(),
	}
	s.messages[req.SessionID] = append(s.messages[req.SessionID], message)
	return message, nil
}

func (s *fakeStore) messageCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages[sessionID])
}

func (s *fakeStore) addSession(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)
}

func (s *fakeStore) addMessage(message models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
}

type fakeAsker struct {
	log     *callLog
	answer  models.Answer
	err     error
	started chan struct{} // closed once, when Ask is first entered
	release chan struct{} // Ask blocks on this when non-nil
	once    sync.Once
}

func newFakeAsker(log *callLog, answer string) *fakeAsker {
	return &fakeAsker{
		log:    log,
		answer: models.Answer{Answer: answer, Sources: []models.Source{}},
	}
}

func (a *fakeAsker) Ask(ctx context.Context, query string) (models.Answer, error) {
	a.log.record("ask")
	if a.started != nil {
		a.once.Do(func() { close(a.started) })
	}
	if a.release != nil {
		<-a.release
	}
	if a.err != nil {
		return models.Answer{}, a.err
	}
	return a.answer, nil
}
