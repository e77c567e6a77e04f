package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/settings"
)

// modeCmd reads and sets the app life stage, which decides whether the
// dashboard leads with kick counting or baby trackers.
var modeCmd = &cobra.Command{
	Use:   "mode [pregnant|born]",
	Short: "Show or set the tracking mode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			mode := ctx.Mode.Mode()
			if ctx.IsJSON() {
				return ctx.Formatter.JSON(map[string]string{"mode": string(mode)})
			}
			if mode == settings.ModeNotSet {
				ctx.Formatter.Mutedf("Mode not set; run 'nestling mode pregnant' or 'nestling mode born'")
				return nil
			}
			ctx.Formatter.Println(string(mode))
			return nil
		}

		mode := settings.AppMode(args[0])
		if !settings.IsValidAppMode(mode) {
			return errors.NewUserErrorWithField("mode", args[0],
				"Unknown mode",
				"Use 'pregnant' or 'born'")
		}
		ctx.Mode.SetMode(mode)
		ctx.Formatter.Successf("Mode set to %s", mode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}
