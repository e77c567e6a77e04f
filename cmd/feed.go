package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/tracker"
	"github.com/nestlingapp/nestling/internal/validate"
)

var (
	flagFeedType   string
	flagFeedAmount int
)

// feedCmd records and reviews feeds. Unlike the plain trackers a feed
// carries a type and, when amount logging is on, a size in ml.
var feedCmd = &cobra.Command{
	Use:     "feed",
	Aliases: []string{"feeding"},
	Short:   "Record and review feeds",
	Long: `Record a feed, optionally with an amount in milliliters.

Examples:
  nestling feed
  nestling feed --type formula --amount 120
  nestling feed today
  nestling feed undo`,
	RunE: runFeedRecord,
}

func init() {
	feedCmd.Flags().StringVarP(&flagFeedType, "type", "t", "breast",
		"Feed type: breast, formula")
	feedCmd.Flags().IntVarP(&flagFeedAmount, "amount", "a", 0,
		"Amount in ml (0 to skip)")

	feedCmd.AddCommand(&cobra.Command{
		Use:   "undo",
		Short: "Remove the most recent feed from today",
		RunE: func(cmd *cobra.Command, args []string) error {
			before := len(ctx.Feedings.Today())
			ctx.Feedings.UndoLast()
			if before == 0 {
				ctx.Formatter.Mutedf("Nothing to undo today")
				return nil
			}
			ctx.Formatter.Successf("Removed the last feed (%d left today)", before-1)
			return nil
		},
	})

	feedCmd.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "Show today's feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedSummary(dates.Today())
		},
	})

	feedCmd.AddCommand(&cobra.Command{
		Use:   "log [day]",
		Short: "List feeds for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := dates.Today()
			if len(args) > 0 {
				var err error
				day, err = dates.ParseDayArg(args[0])
				if err != nil {
					return err
				}
			}
			return runFeedLog(day)
		},
	})

	var resetAll bool
	resetCmd := &cobra.Command{
		Use:   "reset [day]",
		Short: "Delete feeds for a day, or everything with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if resetAll {
				ctx.Feedings.ResetAll()
				ctx.Formatter.Successf("Cleared all feeds")
				return nil
			}
			day := dates.Today()
			if len(args) > 0 {
				var err error
				day, err = dates.ParseDayArg(args[0])
				if err != nil {
					return err
				}
			}
			ctx.Feedings.ResetDay(day)
			ctx.Formatter.Successf("Cleared feeds for %s", day.Display())
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Delete the entire feeding history")
	feedCmd.AddCommand(resetCmd)

	rootCmd.AddCommand(feedCmd)
}

func runFeedRecord(cmd *cobra.Command, args []string) error {
	if err := validate.FeedType(flagFeedType); err != nil {
		return err
	}
	feedType := model.FeedType(flagFeedType)

	cfg := ctx.Settings.Get()
	if feedType == model.FeedBreast && !cfg.BreastFeedEnabled {
		ctx.Formatter.Warnf("Breast feed tracking is disabled in settings")
		return nil
	}
	if feedType == model.FeedFormula && !cfg.FormulaFeedEnabled {
		ctx.Formatter.Warnf("Formula feed tracking is disabled in settings")
		return nil
	}

	var amount *int
	if cfg.FeedingLogAmount && flagFeedAmount > 0 {
		if err := validate.FeedAmount(flagFeedAmount); err != nil {
			return err
		}
		ml := flagFeedAmount
		amount = &ml
	}

	rec := tracker.RecordFeeding(ctx.Feedings, feedType, amount)
	today := ctx.Feedings.Today()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "recorded",
			"feed":   rec,
			"count":  len(today),
			"goal":   cfg.FeedingGoal,
		})
	}

	if amount != nil {
		ctx.Formatter.Successf("%s feed of %d ml recorded at %s (%d/%d today)",
			capitalize(string(feedType)), *amount, dates.Clock(rec.Timestamp),
			len(today), cfg.FeedingGoal)
	} else {
		ctx.Formatter.Successf("%s feed recorded at %s (%d/%d today)",
			capitalize(string(feedType)), dates.Clock(rec.Timestamp),
			len(today), cfg.FeedingGoal)
	}
	if len(today) == cfg.FeedingGoal {
		ctx.Formatter.Successf("Daily goal reached!")
	}
	return nil
}

func runFeedSummary(day dates.DayKey) error {
	feeds := ctx.Feedings.GetDay(day)
	cfg := ctx.Settings.Get()
	sum := tracker.Summarize(feeds)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"day":     day,
			"summary": sum,
			"goal":    cfg.FeedingGoal,
			"breast":  model.BreastFeedCount(feeds),
			"formula": model.FormulaFeedCount(feeds),
			"totalMl": model.TotalMl(feeds),
		})
	}

	ctx.Formatter.Printf("Feeds — %s\n", day.Display())
	ctx.Formatter.Printf("  %d/%d\n", sum.Count, cfg.FeedingGoal)
	if cfg.FeedingSeparateSections {
		ctx.Formatter.Mutedf("  breast %d, formula %d",
			model.BreastFeedCount(feeds), model.FormulaFeedCount(feeds))
	}
	if cfg.FeedingLogAmount {
		ctx.Formatter.Mutedf("  %d ml total", model.TotalMl(feeds))
	}
	if sum.Start != nil && sum.End != nil {
		ctx.Formatter.Mutedf("  first %s, last %s",
			dates.Clock(*sum.Start), dates.Clock(*sum.End))
	}
	return nil
}

func runFeedLog(day dates.DayKey) error {
	feeds := ctx.Feedings.GetDay(day)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"day":     day,
			"entries": feeds,
		})
	}

	if len(feeds) == 0 {
		ctx.Formatter.Mutedf("No feeds on %s", day.Display())
		return nil
	}

	ctx.Formatter.Printf("Feeds — %s\n", day.Display())
	for i, rec := range feeds {
		if rec.AmountMl != nil {
			ctx.Formatter.Printf("  %2d. %s  %s  %d ml\n",
				i+1, dates.Clock(rec.Timestamp), rec.Type, *rec.AmountMl)
		} else {
			ctx.Formatter.Printf("  %2d. %s  %s\n",
				i+1, dates.Clock(rec.Timestamp), rec.Type)
		}
	}
	return nil
}
