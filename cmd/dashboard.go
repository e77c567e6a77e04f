package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/tui"
)

// dashboardCmd launches the interactive TUI dashboard.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		config := tui.DashboardConfig{
			Kicks:    ctx.Kicks,
			Pees:     ctx.Pees,
			Poops:    ctx.Poops,
			Feedings: ctx.Feedings,
			Medicine: ctx.Medicine.Store(),
			Settings: ctx.Settings,
			Mode:     ctx.Mode,
		}
		return tui.Run(config)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
