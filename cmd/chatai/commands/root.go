package commands

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/madhavasok/chatai/internal/chat"
	"github.com/madhavasok/chatai/internal/db"
	"github.com/madhavasok/chatai/internal/query"
	"github.com/madhavasok/chatai/internal/store"
	"github.com/madhavasok/chatai/internal/tui"
)

var (
	apiBaseURL string
	dbPath     string
)

// app bundles the wired collaborators for one command invocation.
type app struct {
	db           *sql.DB
	directory    *chat.Directory
	timeline     *chat.Timeline
	orchestrator *chat.Orchestrator
}

// newApp is the composition root: collaborators are constructed once here
// and passed down explicitly, never reached through lazy globals.
func newApp() (*app, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	persistence := store.New(database)
	directory := chat.NewDirectory(persistence)
	timeline := chat.NewTimeline(persistence)
	asker := query.NewClient(apiBaseURL)
	orchestrator := chat.NewOrchestrator(directory, timeline, asker)

	return &app{
		db:           database,
		directory:    directory,
		timeline:     timeline,
		orchestrator: orchestrator,
	}, nil
}

func (a *app) close() {
	a.db.Close()
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatai",
		Short: "Conversational search from your terminal",
		Long:  `chatai is a TUI client for a conversational search service: ask questions, keep the answers in named sessions, and resume any conversation later.`,
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "Answering service base URL (default "+query.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the session database (default ~/.chatai/chatai.db)")
	rootCmd.AddCommand(NewAskCommand())
	rootCmd.AddCommand(NewShowCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := tui.Run(cmd.Context(), a.directory, a.timeline, a.orchestrator); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
