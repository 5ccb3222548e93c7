package chat

import (
	"context"

	"github.com/madhavasok/chatai/pkg/models"
)

// Channel-returning wrappers around the core operations. The presentation
// layer runs these off its event loop and selects on the result channel or
// cancellation; abandoning a channel is safe because every send also
// selects on ctx.Done.

// SessionsResult carries a directory refresh outcome.
type SessionsResult struct {
	Sessions []models.Session
	Err      error
}

// MessagesResult carries a timeline load outcome for one session.
type MessagesResult struct {
	SessionID string
	Messages  []models.Message
	Err       error
}

// SubmitResult carries a submission outcome.
type SubmitResult struct {
	Result Result
	Err    error
}

// ListAllAsync refreshes the directory in the background.
func (d *Directory) ListAllAsync(ctx context.Context) <-chan SessionsResult {
	resultChan := make(chan SessionsResult, 1)

	go func() {
		defer close(resultChan)
		sessions, err := d.ListAll(ctx)
		select {
		case resultChan <- SessionsResult{Sessions: sessions, Err: err}:
		case <-ctx.Done():
		}
	}()

	return resultChan
}

// LoadAsync replaces the timeline in the background.
func (t *Timeline) LoadAsync(ctx context.Context, sessionID string) <-chan MessagesResult {
	resultChan := make(chan MessagesResult, 1)

	go func() {
		defer close(resultChan)
		messages, err := t.Load(ctx, sessionID)
		select {
		case resultChan <- MessagesResult{SessionID: sessionID, Messages: messages, Err: err}:
		case <-ctx.Done():
		}
	}()

	return resultChan
}

// SubmitAsync runs a submission in the background. Navigating away while it
// is in flight abandons the channel; the exchange still persists against
// the sessionID captured at submission time.
func (o *Orchestrator) SubmitAsync(ctx context.Context, prompt, sessionID string) <-chan SubmitResult {
	resultChan := make(chan SubmitResult, 1)

	go func() {
		defer close(resultChan)
		result, err := o.Submit(ctx, prompt, sessionID)
		select {
		case resultChan <- SubmitResult{Result: result, Err: err}:
		case <-ctx.Done():
		}
	}()

	return resultChan
}
