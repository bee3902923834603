package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bite-admin/bite/pkg/tui"
)

// dashboardCmd launches the interactive TUI dashboard.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive TUI dashboard",
	Long: `Launch an interactive terminal dashboard over the customers and
products lists. Both lists are fetched on start.

Key bindings:
  Tab / 1 / 2      Switch between Customers and Products
  j / k, ↑ / ↓     Move the selection
  n / p            Next / previous page
  /                Edit the search filter (Enter applies, Esc cancels)
  c                Cycle the gender / category filter
  x                Reset filters
  Enter            Open the selected record with its statistics
  d                Delete the selected record (press d again to confirm)
  r                Refresh
  q / Ctrl+C       Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(tui.New(store, cfg.PageSize), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		unsubscribe := tui.Subscribe(p, store)
		defer unsubscribe()
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
