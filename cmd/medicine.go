package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/medicine"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/validate"
)

var (
	flagMedReminderType string
	flagMedRepetition   string
	flagMedOn           string
	flagSnoozeMinutes   int

	flagUpdTime         string
	flagUpdReminderType string
	flagUpdRepetition   string
)

// medicineCmd manages reminders and adherence logs.
var medicineCmd = &cobra.Command{
	Use:     "medicine",
	Aliases: []string{"med"},
	Short:   "Manage medicine reminders and adherence",
	Long: `Manage medicine reminders and the daily record of what was taken.

Examples:
  nestling medicine add "Vitamin D" 08:30
  nestling medicine add "Antibiotic" 20:00 --repeat none --on 2026-09-01
  nestling medicine taken "Vitamin D"
  nestling medicine snooze "Vitamin D" --minutes 15
  nestling medicine list`,
}

func init() {
	addCmd := &cobra.Command{
		Use:   "add <name> <time>",
		Short: "Create a reminder and schedule its notification",
		Args:  cobra.ExactArgs(2),
		RunE:  runMedicineAdd,
	}
	addCmd.Flags().StringVar(&flagMedReminderType, "reminder-type", "notification",
		"Reminder intensity: notification, alarm")
	addCmd.Flags().StringVar(&flagMedRepetition, "repeat", "daily",
		"Repetition: daily, weekly, none")
	addCmd.Flags().StringVar(&flagMedOn, "on", "",
		"Target day for one-time reminders (YYYY-MM-DD)")
	medicineCmd.AddCommand(addCmd)

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all reminders",
		RunE:  runMedicineList,
	})

	updateCmd := &cobra.Command{
		Use:   "update <name|id>",
		Short: "Change a reminder's time, intensity, or repetition",
		Args:  cobra.ExactArgs(1),
		RunE:  runMedicineUpdate,
	}
	updateCmd.Flags().StringVar(&flagUpdTime, "time", "", "New time of day (HH:MM)")
	updateCmd.Flags().StringVar(&flagUpdReminderType, "reminder-type", "", "New intensity: notification, alarm")
	updateCmd.Flags().StringVar(&flagUpdRepetition, "repeat", "", "New repetition: daily, weekly, none")
	medicineCmd.AddCommand(updateCmd)

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "remove <name|id>",
		Short: "Delete a reminder (adherence history is kept)",
		Args:  cobra.ExactArgs(1),
		RunE:  runMedicineRemove,
	})

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "enable <name|id>",
		Short: "Enable a reminder and reschedule its notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMedicineSetEnabled(cmd, args[0], true)
		},
	})

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "disable <name|id>",
		Short: "Disable a reminder and cancel its notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMedicineSetEnabled(cmd, args[0], false)
		},
	})

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "taken <name|id>",
		Short: "Mark today's dose as taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMedicineMark(args[0], model.StatusTaken)
		},
	})

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "missed <name|id>",
		Short: "Mark today's dose as missed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMedicineMark(args[0], model.StatusMissed)
		},
	})

	snoozeCmd := &cobra.Command{
		Use:   "snooze <name|id>",
		Short: "Snooze today's dose and get a one-time nudge later",
		Args:  cobra.ExactArgs(1),
		RunE:  runMedicineSnooze,
	}
	snoozeCmd.Flags().IntVarP(&flagSnoozeMinutes, "minutes", "m", 10,
		"How long to snooze for")
	medicineCmd.AddCommand(snoozeCmd)

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "log [day]",
		Short: "Show adherence for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMedicineLog,
	})

	medicineCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete every reminder and adherence log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.Medicine.Store().ResetAll()
			ctx.Formatter.Successf("Cleared all medicines and adherence logs")
			return nil
		},
	})

	rootCmd.AddCommand(medicineCmd)
}

func runMedicineAdd(cmd *cobra.Command, args []string) error {
	name, timeOfDay := args[0], args[1]

	if err := validate.MedicineName(name); err != nil {
		return err
	}
	if err := validate.TimeOfDay(timeOfDay); err != nil {
		return err
	}
	if err := validate.ReminderType(flagMedReminderType); err != nil {
		return err
	}
	if err := validate.Repetition(flagMedRepetition); err != nil {
		return err
	}

	repetition := model.Repetition(flagMedRepetition)

	var targetDate *time.Time
	if flagMedOn != "" {
		if repetition != model.RepeatOnce {
			return errors.NewUserError("--on only applies to one-time reminders",
				"Add --repeat none, or drop --on")
		}
		day, err := dates.ParseDayArg(flagMedOn)
		if err != nil {
			return err
		}
		t, err := day.Time()
		if err != nil {
			return err
		}
		targetDate = &t
	}

	med, err := ctx.Medicine.AddWithSchedule(cmd.Context(), name, timeOfDay,
		model.ReminderType(flagMedReminderType), repetition, targetDate)
	if err != nil {
		if errors.Is(err, errors.ErrScheduleInPast) {
			return errors.NewUserError("That time has already passed",
				"Pick a future time, or a later --on day")
		}
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":   "added",
			"medicine": med,
		})
	}
	ctx.Formatter.Successf("Added %s at %s (%s, %s)",
		med.Name, med.Time, med.ReminderType, repetitionLabel(med.Repetition))
	return nil
}

func runMedicineList(cmd *cobra.Command, args []string) error {
	meds := ctx.Medicine.Store().List()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{"medicines": meds})
	}

	if len(meds) == 0 {
		ctx.Formatter.Mutedf("No medicines yet")
		return nil
	}

	for _, med := range meds {
		state := "enabled"
		if !med.Enabled {
			state = "disabled"
		}
		ctx.Formatter.Printf("%s  %s  %s  %s  %s\n",
			med.Time, med.Name, med.ReminderType, repetitionLabel(med.Repetition), state)
		ctx.Formatter.Mutedf("  id %s", med.ID)
	}
	return nil
}

func runMedicineUpdate(cmd *cobra.Command, args []string) error {
	med, err := resolveMedicine(args[0])
	if err != nil {
		return err
	}

	upd, err := medicineUpdateFromFlags()
	if err != nil {
		return err
	}
	if upd == nil {
		ctx.Formatter.Mutedf("Nothing to change; pass --time, --reminder-type, or --repeat")
		return nil
	}
	ctx.Medicine.Store().UpdateMedicine(med.ID, *upd)

	// Timing or intensity changes invalidate the outstanding
	// notification; re-register while preserving the enabled state.
	if med.Enabled {
		if err := ctx.Medicine.SetEnabled(cmd.Context(), med.ID, true); err != nil {
			return err
		}
	}

	ctx.Formatter.Successf("Updated %s", med.Name)
	return nil
}

func medicineUpdateFromFlags() (*medicine.Update, error) {
	var upd medicine.Update
	touched := false

	if flagUpdTime != "" {
		if err := validate.TimeOfDay(flagUpdTime); err != nil {
			return nil, err
		}
		upd.Time = &flagUpdTime
		touched = true
	}
	if flagUpdReminderType != "" {
		if err := validate.ReminderType(flagUpdReminderType); err != nil {
			return nil, err
		}
		rt := model.ReminderType(flagUpdReminderType)
		upd.ReminderType = &rt
		touched = true
	}
	if flagUpdRepetition != "" {
		if err := validate.Repetition(flagUpdRepetition); err != nil {
			return nil, err
		}
		rep := model.Repetition(flagUpdRepetition)
		upd.Repetition = &rep
		touched = true
	}

	if !touched {
		return nil, nil
	}
	return &upd, nil
}

func runMedicineRemove(cmd *cobra.Command, args []string) error {
	med, err := resolveMedicine(args[0])
	if err != nil {
		return err
	}
	if err := ctx.Medicine.Remove(cmd.Context(), med.ID); err != nil {
		return err
	}
	ctx.Formatter.Successf("Removed %s (adherence history kept)", med.Name)
	return nil
}

func runMedicineSetEnabled(cmd *cobra.Command, arg string, enabled bool) error {
	med, err := resolveMedicine(arg)
	if err != nil {
		return err
	}
	if err := ctx.Medicine.SetEnabled(cmd.Context(), med.ID, enabled); err != nil {
		return err
	}
	if enabled {
		ctx.Formatter.Successf("Enabled %s", med.Name)
	} else {
		ctx.Formatter.Successf("Disabled %s", med.Name)
	}
	return nil
}

func runMedicineMark(arg string, status model.MedicineStatus) error {
	med, err := resolveMedicine(arg)
	if err != nil {
		return err
	}

	store := ctx.Medicine.Store()
	if status == model.StatusTaken {
		store.MarkTaken(med.ID, nil)
		ctx.Formatter.Successf("Marked %s as taken", med.Name)
	} else {
		store.MarkMissed(med.ID)
		ctx.Formatter.Warnf("Marked %s as missed", med.Name)
	}
	return nil
}

func runMedicineSnooze(cmd *cobra.Command, args []string) error {
	med, err := resolveMedicine(args[0])
	if err != nil {
		return err
	}
	if err := validate.SnoozeMinutes(flagSnoozeMinutes); err != nil {
		return err
	}
	if err := ctx.Medicine.Snooze(cmd.Context(), med.ID, flagSnoozeMinutes); err != nil {
		return err
	}
	ctx.Formatter.Successf("Snoozed %s for %d minutes", med.Name, flagSnoozeMinutes)
	return nil
}

func runMedicineLog(cmd *cobra.Command, args []string) error {
	day := dates.Today()
	if len(args) > 0 {
		var err error
		day, err = dates.ParseDayArg(args[0])
		if err != nil {
			return err
		}
	}

	logs := ctx.Medicine.Store().GetLogsForDate(day)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"day":  day,
			"logs": logs,
		})
	}

	if len(logs) == 0 {
		ctx.Formatter.Mutedf("No adherence entries on %s", day.Display())
		return nil
	}

	ctx.Formatter.Printf("Medicines — %s\n", day.Display())
	for _, log := range logs {
		line := "  " + log.MedicineName + "  " + string(log.Status)
		if log.ActualTime != nil {
			line += " at " + dates.Clock(*log.ActualTime)
		}
		if n := len(log.SnoozeHistory); n > 0 {
			line += "  (snoozed " + strconv.Itoa(n) + "x)"
		}
		ctx.Formatter.Println(line)
	}
	return nil
}

// resolveMedicine finds a reminder by id or case-insensitive name.
func resolveMedicine(arg string) (*model.MedicineReminder, error) {
	store := ctx.Medicine.Store()
	if med := store.Get(arg); med != nil {
		return med, nil
	}
	for _, med := range store.List() {
		if strings.EqualFold(med.Name, arg) {
			return med, nil
		}
	}
	return nil, errors.NewUserErrorWithField("medicine", arg,
		"No such medicine",
		"Run 'nestling medicine list' to see names and ids")
}

func repetitionLabel(r model.Repetition) string {
	if r == model.RepeatOnce {
		return "one-time"
	}
	return string(r)
}
