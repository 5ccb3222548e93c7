package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/madhavasok/chatai/internal/chat"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show sessions or messages without the TUI",
		Long: `Show sessions or messages in a non-interactive format.
Without arguments: lists all sessions, most recently updated first
With a session id: shows that session's conversation`,
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	switch len(args) {
	case 0:
		return showSessions(ctx, a)
	case 1:
		return showMessages(ctx, a, args[0])
	default:
		return fmt.Errorf("too many arguments. Usage: chatai show [session-id]")
	}
}

func showSessions(ctx context.Context, a *app) error {
	sessions, err := a.directory.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	now := time.Now()
	fmt.Println("Sessions:")
	fmt.Println("=========")
	for i, session := range sessions {
		fmt.Printf("%d. %s\n", i+1, session.Title)
		fmt.Printf("   ID: %s\n", session.ID)
		fmt.Printf("   Updated: %s (%s)\n", session.UpdatedAt.Format("2006-01-02 15:04"), chat.RelativeTime(now, session.UpdatedAt))
		fmt.Println()
	}

	return nil
}

func showMessages(ctx context.Context, a *app, sessionID string) error {
	messages, err := a.timeline.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	if len(messages) == 0 {
		fmt.Printf("No messages found for session '%s'\n", sessionID)
		return nil
	}

	fmt.Printf("Conversation for session '%s':\n", sessionID)
	fmt.Println("================================================")
	for _, message := range messages {
		fmt.Printf("\n[You] %s\n", message.Question)
		fmt.Printf("[ChatAI] %s\n", message.Answer)
		if len(message.Sources) > 0 {
			fmt.Printf("(%d sources)\n", len(message.Sources))
		}
	}

	return nil
}
