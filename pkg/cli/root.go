// Package cli implements the bitectl commands. Every command reads and
// writes through a state.Store built in the root command.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bite-admin/bite/pkg/api"
	"github.com/bite-admin/bite/pkg/config"
	"github.com/bite-admin/bite/pkg/output"
	"github.com/bite-admin/bite/pkg/state"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
	serverURL    string
	dryRun       bool // --dry-run: print actions without executing them
	yesFlag      bool // --yes: skip confirmation prompts for destructive operations

	// Shared state set during PersistentPreRun
	cfg       *config.Config
	store     *state.Store
	formatter output.Formatter

	// Test hooks. A nil value means "build from config".
	injectedClient    api.Client
	injectedFormatter output.Formatter
	stdin             io.Reader = os.Stdin
	now                         = time.Now
)

// rootCmd is the base command for bitectl.
var rootCmd = &cobra.Command{
	Use:   "bitectl",
	Short: "bite admin CLI: manage customers and products",
	Long: `bitectl is the command-line admin client for the bite backend.
It lists, filters, creates, edits and deletes customers and products, and
offers an interactive terminal dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if outputFormat != "" {
			cfg.OutputFormat = outputFormat
		}

		logger := cfg.Logger(cmd.ErrOrStderr())
		client := injectedClient
		if client == nil {
			client = api.NewHTTPClient(cfg.ServerURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))
		}
		store = state.New(client, state.WithLogger(logger))

		formatter = injectedFormatter
		if formatter == nil {
			formatter = output.NewFormatter(cfg.OutputFormat)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetClient allows tests to inject a client. Pass nil to restore the HTTP
// client built from config.
func SetClient(c api.Client) {
	injectedClient = c
}

// SetFormatter allows tests to inject a formatter.
func SetFormatter(f output.Formatter) {
	injectedFormatter = f
}

// RootCmd returns the root cobra.Command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bite/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml (default \"table\")")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "bite API base URL, e.g. http://localhost:8080/api")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print actions that would be taken without executing them")
	rootCmd.PersistentFlags().BoolVar(&yesFlag, "yes", false, "skip confirmation prompts for destructive operations")
}

// confirm asks a yes/no question unless --yes was given.
func confirm(cmd *cobra.Command, question string) bool {
	if yesFlag {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	scanner := bufio.NewScanner(stdin)
	scanner.Scan()
	if strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return false
	}
	return true
}

// failure reports a failed store operation with the message the store
// recorded for it.
func failure(what string, err error) error {
	var opErr *state.OperationError
	if errors.As(err, &opErr) {
		return fmt.Errorf("failed to %s: %s", what, opErr.Message)
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

// printPage writes one page of a list and, for tables, a page footer.
func printPage(cmd *cobra.Command, rows any, page, pages, total int) {
	fmt.Fprint(cmd.OutOrStdout(), formatter.Format(rows))
	if _, ok := formatter.(*output.TableFormatter); ok && total > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d total)\n", page, pages, total)
	}
}
