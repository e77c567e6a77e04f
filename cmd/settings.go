package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/settings"
)

// settingsCmd reads and writes the user-tunable knobs.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change settings",
	Long: `Show and change settings such as daily goals and tracker visibility.

Examples:
  nestling settings
  nestling settings set kick-goal 12
  nestling settings set pee-enabled false`,
	RunE: runSettingsList,
}

func init() {
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "set <name> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettingsSet,
	})
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	current := ctx.Settings.Get()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(current)
	}

	for _, field := range settings.Fields() {
		ctx.Formatter.Printf("%-28s %-6s %s\n",
			field.Name, field.Value(current), field.Help)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	name, raw := args[0], args[1]

	field, ok := settings.Lookup(name)
	if !ok {
		return errors.NewUserErrorWithField("setting", name,
			"Unknown setting",
			"Run 'nestling settings' to list them")
	}

	var applyErr error
	ctx.Settings.Update(func(s *settings.Settings) {
		applyErr = field.Apply(s, raw)
	})
	if applyErr != nil {
		return errors.NewUserError(applyErr.Error(),
			"Run 'nestling settings' to see current values")
	}

	ctx.Formatter.Successf("%s = %s", name, field.Value(ctx.Settings.Get()))
	return nil
}
