package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/settings"
	"github.com/nestlingapp/nestling/internal/tracker"
)

// todayCmd prints today's summary across every visible tracker.
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTodaySummary()
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runTodaySummary() error {
	day := dates.Today()
	cfg := ctx.Settings.Get()
	mode := ctx.Mode.Mode()

	if ctx.IsJSON() {
		out := map[string]interface{}{
			"day":  day,
			"mode": mode,
		}
		if mode == settings.ModePregnant {
			out["kicks"] = tracker.SummarizeKicks(ctx.Kicks.Today())
			out["kickGoal"] = cfg.KickGoal
		} else {
			feeds := ctx.Feedings.Today()
			out["pees"] = tracker.Summarize(ctx.Pees.Today())
			out["poops"] = tracker.Summarize(ctx.Poops.Today())
			out["feeds"] = tracker.Summarize(feeds)
			out["totalMl"] = model.TotalMl(feeds)
		}
		out["medicines"] = ctx.Medicine.Store().GetTodayLogs()
		return ctx.Formatter.JSON(out)
	}

	ctx.Formatter.Printf("%s\n", day.Display())

	if mode == settings.ModePregnant {
		sum := tracker.SummarizeKicks(ctx.Kicks.Today())
		ctx.Formatter.Printf("  kicks %d/%d\n", sum.Count, cfg.KickGoal)
		if sum.Tenth != nil {
			ctx.Formatter.Successf("  ★ tenth kick at %s", dates.Clock(*sum.Tenth))
		}
	} else {
		if cfg.PeeEnabled {
			ctx.Formatter.Printf("  wet diapers %d/%d\n",
				len(ctx.Pees.Today()), cfg.PeeGoal)
		}
		if cfg.PoopEnabled {
			ctx.Formatter.Printf("  dirty diapers %d/%d\n",
				len(ctx.Poops.Today()), cfg.PoopGoal)
		}
		feeds := ctx.Feedings.Today()
		ctx.Formatter.Printf("  feeds %d/%d\n", len(feeds), cfg.FeedingGoal)
		if cfg.FeedingLogAmount {
			ctx.Formatter.Mutedf("    %d ml total", model.TotalMl(feeds))
		}
	}

	logs := ctx.Medicine.Store().GetTodayLogs()
	for _, log := range logs {
		line := "  " + log.MedicineName + ": " + string(log.Status)
		if log.ActualTime != nil {
			line += " at " + dates.Clock(*log.ActualTime)
		}
		ctx.Formatter.Println(line)
	}
	return nil
}
