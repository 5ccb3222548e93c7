package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/madhavasok/chatai/internal/chat"
	"github.com/madhavasok/chatai/pkg/models"
)

// Message types for async operations
type (
	// SessionsLoadedMsg carries a refreshed session list.
	SessionsLoadedMsg struct {
		Sessions []models.Session
		Err      error
	}

	// MessagesLoadedMsg carries one session's loaded timeline.
	MessagesLoadedMsg struct {
		SessionID string
		Messages  []models.Message
		Err       error
	}

	// SubmitFinishedMsg carries the outcome of a prompt submission.
	SubmitFinishedMsg struct {
		Result chat.Result
		Err    error
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// Commands for async operations

// listSessionsCmd refreshes the session directory asynchronously.
func listSessionsCmd(ctx context.Context, directory *chat.Directory) tea.Cmd {
	return func() tea.Msg {
		select {
		case res := <-directory.ListAllAsync(ctx):
			return SessionsLoadedMsg{Sessions: res.Sessions, Err: res.Err}
		case <-ctx.Done():
			return SessionsLoadedMsg{Err: ctx.Err()}
		}
	}
}

// loadMessagesCmd loads a session's timeline asynchronously.
func loadMessagesCmd(ctx context.Context, timeline *chat.Timeline, sessionID string) tea.Cmd {
	return func() tea.Msg {
		select {
		case res := <-timeline.LoadAsync(ctx, sessionID):
			return MessagesLoadedMsg{SessionID: res.SessionID, Messages: res.Messages, Err: res.Err}
		case <-ctx.Done():
			return MessagesLoadedMsg{SessionID: sessionID, Err: ctx.Err()}
		}
	}
}

// submitCmd runs one prompt submission asynchronously. The submission keeps
// running even if the user navigates elsewhere; the timeline keys the
// eventual append by the session id captured here.
func submitCmd(ctx context.Context, orchestrator *chat.Orchestrator, prompt, sessionID string) tea.Cmd {
	return func() tea.Msg {
		res := <-orchestrator.SubmitAsync(ctx, prompt, sessionID)
		return SubmitFinishedMsg{Result: res.Result, Err: res.Err}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
