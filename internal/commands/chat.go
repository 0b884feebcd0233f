package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/helpchat/internal/config"
	"github.com/diogo/helpchat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the helpdesk assistant.

Replies stream into the conversation as the backend produces them.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, _ := config.LoadConfig()

	client, err := newClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	// Probe the backend before opening the view so connection problems
	// surface as a plain message instead of inside the TUI.
	spin := newSpinner("Connecting to helpdesk")
	spin.start()
	if _, err := client.Health(); err != nil {
		spin.stopWithError()
		fmt.Println(formatErrorMessage(err, "Backend unavailable"))
		return fmt.Errorf("backend unavailable: %w", err)
	}
	spin.stopWithSuccess("Connected")

	revealDelay := time.Duration(cfg.RevealDelayMs) * time.Millisecond

	// Run chat TUI
	return tui.RunChat(client, revealDelay)
}
