// Package chat holds the session/query orchestration core: the session
// directory, the per-session message timeline, and the orchestrator that
// sequences one prompt submission across the persistence store and the
// answering service.
package chat

import (
	"context"

	"github.com/madhavasok/chatai/pkg/models"
)

// DefaultSessionTitle is assigned to sessions created on first submission.
const DefaultSessionTitle = "New Session"

// Store is the persistence collaborator consumed by the core.
type Store interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	CreateSession(ctx context.Context, title string) (models.Session, error)
	ListMessages(ctx context.Context, sessionID string) ([]models.Message, error)
	CreateMessage(ctx context.Context, req models.CreateMessageRequest) (models.Message, error)
}

// Asker is the answering collaborator consumed by the core.
type Asker interface {
	Ask(ctx context.Context, query string) (models.Answer, error)
}
