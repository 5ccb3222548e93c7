package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/madhavasok/chatai/pkg/models"
)

// DuckDB is the persistence store backing sessions and messages. It mints
// entity ids itself; callers never invent them.
type DuckDB struct {
	db *sql.DB
}

// New wraps an opened database handle.
func New(db *sql.DB) *DuckDB {
	return &DuckDB{db: db}
}

// ListSessions returns all sessions, most recently updated first.
func (s *DuckDB) ListSessions(ctx context.Context) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at
		FROM sessions
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(&session.ID, &session.Title, &session.CreatedAt, &session.UpdatedAt); err != nil {
			continue
		}
		session.CreatedAt = session.CreatedAt.Local()
		session.UpdatedAt = session.UpdatedAt.Local()
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// CreateSession mints a new session with the given title.
func (s *DuckDB) CreateSession(ctx context.Context, title string) (models.Session, error) {
	now := time.Now().UTC()
	session := models.Session{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.Title, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	session.CreatedAt = session.CreatedAt.Local()
	session.UpdatedAt = session.UpdatedAt.Local()
	return session, nil
}

// ListMessages returns a session's messages, oldest first.
func (s *DuckDB) ListMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, question, answer, sources, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var message models.Message
		var sourcesJSON sql.NullString
		if err := rows.Scan(&message.ID, &message.SessionID, &message.Question,
			&message.Answer, &sourcesJSON, &message.CreatedAt); err != nil {
			continue
		}
		message.Sources = decodeSources(sourcesJSON)
		message.CreatedAt = message.CreatedAt.Local()
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// CreateMessage persists one completed question/answer exchange and bumps
// the owning session's updated_at. Unknown session ids are rejected.
func (s *DuckDB) CreateMessage(ctx context.Context, req models.CreateMessageRequest) (models.Message, error) {
	if req.Sources == nil {
		req.Sources = []models.Source{}
	}

	sourcesJSON, err := json.Marshal(req.Sources)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to encode sources: %w", err)
	}

	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET updated_at = ? WHERE id = ?
	`, now, req.SessionID)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to touch session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Message{}, fmt.Errorf("unknown session %q", req.SessionID)
	}

	message := models.Message{
		ID:        uuid.New().String(),
		SessionID: req.SessionID,
		Question:  req.Question,
		Answer:    req.Answer,
		Sources:   req.Sources,
		CreatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, question, answer, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, message.ID, message.SessionID, message.Question, message.Answer,
		string(sourcesJSON), message.CreatedAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	message.CreatedAt = message.CreatedAt.Local()
	return message, nil
}

func decodeSources(raw sql.NullString) []models.Source {
	sources := []models.Source{}
	if !raw.Valid || raw.String == "" {
		return sources
	}
	if err := json.Unmarshal([]byte(raw.String), &sources); err != nil {
		return []models.Source{}
	}
	return sources
}
