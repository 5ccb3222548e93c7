package models

import "time"

// Session is a named conversation thread grouping question/answer exchanges.
// The persistence store assigns IDs; UpdatedAt is the recency sort key.
type Session struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Source is one citation attached to an answer.
type Source map[string]any

// Message is one persisted question/answer exchange within a session.
type Message struct {
	ID        string
	SessionID string
	Question  string
	Answer    string
	Sources   []Source
	CreatedAt time.Time
}

// Answer is the answering service's response to a single query.
type Answer struct {
	Answer  string
	Sources []Source
}

// CreateMessageRequest carries a completed exchange to the store.
type CreateMessageRequest struct {
	SessionID string
	Question  string
	Answer    string
	Sources   []Source
}
