package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend availability",
	Long:  `Probe the helpdesk backend's health endpoint and print its banner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func runStatus() error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	okStyle := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	fmt.Printf("%s %s\n", dimStyle.Render("Server:"), client.BaseURL())

	status, err := client.Health()
	if err != nil {
		fmt.Printf("%s %s\n", dimStyle.Render("Health:"), errStyle.Render("✗ unreachable"))
		fmt.Println(formatErrorMessage(err, "Health check failed"))
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Printf("%s %s\n", dimStyle.Render("Health:"), okStyle.Render("✓ "+status))

	// The banner is informational only; a failure here is not fatal.
	if banner, err := client.Banner(); err == nil && banner != "" {
		fmt.Printf("%s %s\n", dimStyle.Render("Banner:"), banner)
	}

	return nil
}
