package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/tracker"
)

// historyCmd shows a cross-tracker view of one day, or the list of days
// that have any data.
var historyCmd = &cobra.Command{
	Use:   "history [day]",
	Short: "Show everything recorded on a day",
	Long: `Show every tracker's entries and medicine adherence for a day.

Examples:
  nestling history
  nestling history yesterday
  nestling history 2026-08-01
  nestling history days`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := dates.Today()
		if len(args) > 0 {
			var err error
			day, err = dates.ParseDayArg(args[0])
			if err != nil {
				return err
			}
		}
		return runHistoryDay(day)
	},
}

func init() {
	historyCmd.AddCommand(&cobra.Command{
		Use:   "days",
		Short: "List days that have any recorded data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryDays()
		},
	})
	rootCmd.AddCommand(historyCmd)
}

func runHistoryDay(day dates.DayKey) error {
	kicks := ctx.Kicks.GetDay(day)
	pees := ctx.Pees.GetDay(day)
	poops := ctx.Poops.GetDay(day)
	feeds := ctx.Feedings.GetDay(day)
	logs := ctx.Medicine.Store().GetLogsForDate(day)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"day":       day,
			"kicks":     tracker.SummarizeKicks(kicks),
			"pees":      tracker.Summarize(pees),
			"poops":     tracker.Summarize(poops),
			"feeds":     tracker.Summarize(feeds),
			"totalMl":   model.TotalMl(feeds),
			"medicines": logs,
		})
	}

	ctx.Formatter.Printf("%s\n", day.Display())

	empty := true
	if len(kicks) > 0 {
		empty = false
		printHistoryLine("kicks", tracker.Summarize(kicks))
	}
	if len(pees) > 0 {
		empty = false
		printHistoryLine("wet diapers", tracker.Summarize(pees))
	}
	if len(poops) > 0 {
		empty = false
		printHistoryLine("dirty diapers", tracker.Summarize(poops))
	}
	if len(feeds) > 0 {
		empty = false
		printHistoryLine("feeds", tracker.Summarize(feeds))
		if ml := model.TotalMl(feeds); ml > 0 {
			ctx.Formatter.Mutedf("    %d ml total", ml)
		}
	}
	for _, log := range logs {
		empty = false
		line := "  " + log.MedicineName + ": " + string(log.Status)
		if log.ActualTime != nil {
			line += " at " + dates.Clock(*log.ActualTime)
		}
		ctx.Formatter.Println(line)
	}

	if empty {
		ctx.Formatter.Mutedf("  nothing recorded")
	}
	return nil
}

func printHistoryLine(label string, sum tracker.Summary) {
	if sum.Start != nil && sum.End != nil {
		ctx.Formatter.Printf("  %d %s  (%s – %s)\n", sum.Count, label,
			dates.Clock(*sum.Start), dates.Clock(*sum.End))
		return
	}
	ctx.Formatter.Printf("  %d %s\n", sum.Count, label)
}

// runHistoryDays merges the per-store day lists, most recent first.
func runHistoryDays() error {
	seen := make(map[dates.DayKey]bool)
	var days []dates.DayKey

	lists := [][]dates.DayKey{
		ctx.Kicks.GetAllDays(),
		ctx.Pees.GetAllDays(),
		ctx.Poops.GetAllDays(),
		ctx.Feedings.GetAllDays(),
		ctx.Medicine.Store().GetAllLogDays(),
	}
	for _, list := range lists {
		for _, day := range list {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{"days": days})
	}

	if len(days) == 0 {
		ctx.Formatter.Mutedf("No data yet")
		return nil
	}
	for _, day := range days {
		ctx.Formatter.Printf("%s  %s\n", day, day.Display())
	}
	return nil
}
