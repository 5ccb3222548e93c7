package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askSessionID string

// NewAskCommand creates the ask command
func NewAskCommand() *cobra.Command {
	askCmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Ask one question without the TUI",
		Long: `Ask a single question non-interactively. Without --session a new
session is created and its id printed so the conversation can be resumed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}
	askCmd.Flags().StringVar(&askSessionID, "session", "", "Continue an existing session instead of creating one")
	return askCmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	prompt := args[0]
	for _, arg := range args[1:] {
		prompt += " " + arg
	}

	result, err := a.orchestrator.Submit(cmd.Context(), prompt, askSessionID)
	if err != nil {
		return err
	}

	fmt.Println(result.Message.Answer)
	if len(result.Message.Sources) > 0 {
		fmt.Printf("\n(%d sources)\n", len(result.Message.Sources))
	}
	if result.CreatedSession {
		fmt.Printf("\nSession: %s (resume with --session %s)\n", result.SessionID, result.SessionID)
	}

	return nil
}
