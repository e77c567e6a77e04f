// Package validate provides input validation for the nestling CLI
// boundary. Core stores assume pre-validated input; everything a user
// types passes through here first.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/model"
)

const (
	// MaxMedicineNameLength is the maximum length for a medicine name.
	MaxMedicineNameLength = 128
	// MaxSnoozeMinutes caps a snooze at one day.
	MaxSnoozeMinutes = 24 * 60
	// MaxFeedAmountMl caps a single logged feed.
	MaxFeedAmountMl = 2000
)

// MedicineName validates a medicine display name.
func MedicineName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewUserError("Medicine name cannot be empty",
			"Provide a name, e.g. 'Vitamin D'")
	}
	if utf8.RuneCountInString(name) > MaxMedicineNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Medicine name too long",
			"Names must be 128 characters or fewer")
	}
	return nil
}

// TimeOfDay validates an HH:MM time string.
func TimeOfDay(s string) error {
	if _, _, err := model.ParseTimeOfDay(s); err != nil {
		return errors.NewUserErrorWithField("time", s,
			"Invalid time of day",
			"Use 24-hour HH:MM, e.g. '08:30' or '20:00'")
	}
	return nil
}

// Goal validates a daily goal value.
func Goal(n int) error {
	if n <= 0 {
		return errors.NewUserError("Goal must be a positive number",
			"Pick how many events count as a full day, e.g. 10")
	}
	return nil
}

// FeedAmount validates a feed amount in milliliters.
func FeedAmount(ml int) error {
	if ml <= 0 {
		return errors.NewUserError("Amount must be positive",
			"Give the feed size in ml, e.g. 120")
	}
	if ml > MaxFeedAmountMl {
		return errors.NewUserError("Amount is implausibly large",
			"Feed amounts are capped at 2000 ml")
	}
	return nil
}

// SnoozeMinutes validates a snooze duration.
func SnoozeMinutes(minutes int) error {
	if minutes <= 0 {
		return errors.NewUserError("Snooze duration must be positive",
			"Give the snooze length in minutes, e.g. 10")
	}
	if minutes > MaxSnoozeMinutes {
		return errors.NewUserError("Snooze duration too long",
			"Snoozes are capped at 24 hours")
	}
	return nil
}

// FeedType validates a feed type string.
func FeedType(s string) error {
	if !model.IsValidFeedType(model.FeedType(s)) {
		return errors.NewUserErrorWithField("type", s,
			"Unknown feed type",
			"Use 'breast' or 'formula'")
	}
	return nil
}

// ReminderType validates a reminder intensity string.
func ReminderType(s string) error {
	if !model.IsValidReminderType(model.ReminderType(s)) {
		return errors.NewUserErrorWithField("reminder-type", s,
			"Unknown reminder type",
			"Use 'notification' or 'alarm'")
	}
	return nil
}

// Repetition validates a repetition rule string.
func Repetition(s string) error {
	if !model.IsValidRepetition(model.Repetition(s)) {
		return errors.NewUserErrorWithField("repetition", s,
			"Unknown repetition",
			"Use 'daily', 'weekly', or 'none' for one-time")
	}
	return nil
}
