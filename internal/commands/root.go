// Package commands provides CLI commands for helpchat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/helpchat/internal/api"
	"github.com/diogo/helpchat/internal/config"
)

var (
	// Global flags
	serverFlag   string
	deliveryFlag string
	outputFlag   string
	fileFlag     string
	rawFlag      bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "helpchat [question]",
	Short: "Terminal client for the IT helpdesk assistant",
	Long: `helpchat is a command-line client for the IT helpdesk assistant API.
It sends your question to the backend and renders the reply in the
terminal, streaming it incrementally when the server supports it.

Examples:
  helpchat chat                          Start interactive chat
  helpchat status                        Check backend availability
  helpchat "printer won't connect"       Ask a single question
  helpchat -f issue.md                   Read the question from a file
  cat issue.md | helpchat                Read the question from stdin
  helpchat "vpn drops" -o answer.md      Save the reply to a file
  helpchat --delivery query "slow wifi"  Fetch the reply in one response`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("helpchat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		// Check for file input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag || !isStdoutTTY())
		}

		// Check for stdin
		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag || !isStdoutTTY())
		}

		// Check for positional argument
		if len(args) > 0 {
			return runQuery(args[0], rawFlag || !isStdoutTTY())
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Backend base URL (default from config)")
	rootCmd.PersistentFlags().StringVarP(&deliveryFlag, "delivery", "d", "",
		"Reply delivery mode (stream, query, events)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save reply to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read question from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw reply without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
}

// getServerURL returns the backend URL to use (from flag or config)
func getServerURL() string {
	if serverFlag != "" {
		return serverFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return config.DefaultConfig().ServerURL
	}

	return cfg.ServerURL
}

// getDelivery returns the delivery mode to use (from flag or config).
// An unrecognized value falls back to the streaming default with a warning.
func getDelivery() api.Delivery {
	name := deliveryFlag
	if name == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return api.DeliveryStream
		}
		name = cfg.Delivery
	}

	delivery, err := api.ParseDelivery(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid delivery mode '%s', using streaming\n", name)
		return api.DeliveryStream
	}

	return delivery
}

// newClient builds a backend client from flags and config.
func newClient() (*api.HelpdeskClient, error) {
	return api.NewClient(
		api.WithBaseURL(getServerURL()),
		api.WithDelivery(getDelivery()),
	)
}
