package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/settings"
	"github.com/nestlingapp/nestling/internal/tracker"
)

// eventTracker describes one tap-to-record tracker so kick, pee, and
// poop share a single command constructor.
type eventTracker struct {
	use           string
	short         string
	label         string // singular, for confirmation lines
	plural        string
	store         func() *tracker.EventStore
	goal          func(settings.Settings) int
	enabled       func(settings.Settings) bool
	withMilestone bool // kick-only tenth marker
}

var kickTracker = eventTracker{
	use:           "kick",
	short:         "Record and review baby kicks",
	label:         "kick",
	plural:        "kicks",
	store:         func() *tracker.EventStore { return ctx.Kicks },
	goal:          func(s settings.Settings) int { return s.KickGoal },
	enabled:       func(settings.Settings) bool { return true },
	withMilestone: true,
}

var peeTracker = eventTracker{
	use:     "pee",
	short:   "Record and review wet diapers",
	label:   "wet diaper",
	plural:  "wet diapers",
	store:   func() *tracker.EventStore { return ctx.Pees },
	goal:    func(s settings.Settings) int { return s.PeeGoal },
	enabled: func(s settings.Settings) bool { return s.PeeEnabled },
}

var poopTracker = eventTracker{
	use:     "poop",
	short:   "Record and review dirty diapers",
	label:   "dirty diaper",
	plural:  "dirty diapers",
	store:   func() *tracker.EventStore { return ctx.Poops },
	goal:    func(s settings.Settings) int { return s.PoopGoal },
	enabled: func(s settings.Settings) bool { return s.PoopEnabled },
}

func init() {
	rootCmd.AddCommand(newEventTrackerCmd(kickTracker))
	rootCmd.AddCommand(newEventTrackerCmd(peeTracker))
	rootCmd.AddCommand(newEventTrackerCmd(poopTracker))
}

// newEventTrackerCmd builds the command tree for one tracker:
// record (default), undo, today, log, and reset.
func newEventTrackerCmd(t eventTracker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   t.use,
		Short: t.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackerRecord(t)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "undo",
		Short: fmt.Sprintf("Remove the most recent %s from today", t.label),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackerUndo(t)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "today",
		Short: fmt.Sprintf("Show today's %s", t.plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackerSummary(t, dates.Today())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "log [day]",
		Short: fmt.Sprintf("List %s for a day", t.plural),
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
			return runTrackerLog(t, day)
		},
	})

	var resetAll bool
	resetCmd := &cobra.Command{
		Use:   "reset [day]",
		Short: fmt.Sprintf("Delete %s for a day, or everything with --all", t.plural),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if resetAll {
				t.store().ResetAll()
				ctx.Formatter.Successf("Cleared all %s", t.plural)
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
			t.store().ResetDay(day)
			ctx.Formatter.Successf("Cleared %s for %s", t.plural, day.Display())
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Delete the tracker's entire history")
	cmd.AddCommand(resetCmd)

	return cmd
}

func runTrackerRecord(t eventTracker) error {
	if !t.enabled(ctx.Settings.Get()) {
		ctx.Formatter.Warnf("The %s tracker is disabled in settings", t.label)
		return nil
	}

	rec := tracker.RecordEvent(t.store())
	today := t.store().Today()
	goal := t.goal(ctx.Settings.Get())

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":    "recorded",
			"tracker":   t.use,
			"timestamp": rec.Timestamp,
			"count":     len(today),
			"goal":      goal,
		})
	}

	ctx.Formatter.Successf("%s recorded at %s (%d/%d today)",
		capitalize(t.label), dates.Clock(rec.Timestamp), len(today), goal)

	if t.withMilestone {
		if sum := tracker.SummarizeKicks(today); sum.Tenth != nil && sum.Count == 10 {
			ctx.Formatter.Successf("★ That's the tenth kick of the day!")
		}
	}
	if len(today) == goal {
		ctx.Formatter.Successf("Daily goal reached!")
	}
	return nil
}

func runTrackerUndo(t eventTracker) error {
	store := t.store()
	before := len(store.Today())
	store.UndoLast()

	if before == 0 {
		ctx.Formatter.Mutedf("Nothing to undo today")
		return nil
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":  "undone",
			"tracker": t.use,
			"count":   before - 1,
		})
	}
	ctx.Formatter.Successf("Removed the last %s (%d left today)", t.label, before-1)
	return nil
}

func runTrackerSummary(t eventTracker, day dates.DayKey) error {
	records := t.store().GetDay(day)
	goal := t.goal(ctx.Settings.Get())

	if t.withMilestone {
		sum := tracker.SummarizeKicks(records)
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]interface{}{
				"day":     day,
				"tracker": t.use,
				"summary": sum,
				"goal":    goal,
			})
		}
		printEventSummary(t, day, sum.Summary, goal)
		if sum.Tenth != nil {
			ctx.Formatter.Successf("★ Tenth kick at %s", dates.Clock(*sum.Tenth))
		}
		return nil
	}

	sum := tracker.Summarize(records)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"day":     day,
			"tracker": t.use,
			"summary": sum,
			"goal":    goal,
		})
	}
	printEventSummary(t, day, sum, goal)
	return nil
}

func printEventSummary(t eventTracker, day dates.DayKey, sum tracker.Summary, goal int) {
	ctx.Formatter.Printf("%s — %s\n", capitalize(t.plural), day.Display())
	ctx.Formatter.Printf("  %d/%d\n", sum.Count, goal)
	if sum.Start != nil && sum.End != nil {
		ctx.Formatter.Mutedf("  first %s, last %s",
			dates.Clock(*sum.Start), dates.Clock(*sum.End))
	}
}

func runTrackerLog(t eventTracker, day dates.DayKey) error {
	records := t.store().GetDay(day)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"day":     day,
			"tracker": t.use,
			"entries": records,
		})
	}

	if len(records) == 0 {
		ctx.Formatter.Mutedf("No %s on %s", t.plural, day.Display())
		return nil
	}

	ctx.Formatter.Printf("%s — %s\n", capitalize(t.plural), day.Display())
	for i, rec := range records {
		ctx.Formatter.Printf("  %2d. %s\n", i+1, dates.Clock(rec.Timestamp))
	}
	return nil
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
