package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/helpchat/internal/api"
	"github.com/diogo/helpchat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change helpchat settings.

Without arguments the current configuration is printed. Use 'set' to
change a value:

  helpchat config set server http://helpdesk.internal:8000
  helpchat config set delivery events
  helpchat config set reveal-delay 8
  helpchat config set clipboard true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path, _ := config.GetConfigPath()
	fmt.Printf("Config file:   %s\n", path)
	fmt.Printf("server:        %s\n", cfg.ServerURL)
	fmt.Printf("delivery:      %s (available: %s)\n", cfg.Delivery, strings.Join(config.AvailableDeliveries(), ", "))
	fmt.Printf("reveal-delay:  %dms\n", cfg.RevealDelayMs)
	fmt.Printf("verbose:       %t\n", cfg.Verbose)
	fmt.Printf("clipboard:     %t\n", cfg.CopyToClipboard)
	fmt.Printf("markdown:      style=%s emoji=%t\n", cfg.Markdown.Style, cfg.Markdown.EnableEmoji)

	return nil
}

func runConfigSet(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "server":
		cfg.ServerURL = strings.TrimRight(value, "/")

	case "delivery":
		if _, err := api.ParseDelivery(value); err != nil {
			return fmt.Errorf("invalid delivery mode %q (available: %s)",
				value, strings.Join(config.AvailableDeliveries(), ", "))
		}
		cfg.Delivery = value

	case "reveal-delay":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return fmt.Errorf("reveal-delay must be a non-negative number of milliseconds")
		}
		cfg.RevealDelayMs = ms

	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false")
		}
		cfg.Verbose = b

	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("clipboard must be true or false")
		}
		cfg.CopyToClipboard = b

	case "markdown-style":
		cfg.Markdown.Style = value

	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✓ %s set to %s\n", key, value)
	return nil
}
