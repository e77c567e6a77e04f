package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nestlingapp/nestling/internal/dates"
)

// MedicineStatus is the adherence state of a medicine for one day.
type MedicineStatus string

const (
	StatusPending MedicineStatus = "pending"
	StatusTaken   MedicineStatus = "taken"
	StatusMissed  MedicineStatus = "missed"
	StatusSnoozed MedicineStatus = "snoozed"
)

// ReminderType selects the presentation tier for a reminder:
// a standard notification or an intrusive alarm.
type ReminderType string

const (
	ReminderNotification ReminderType = "notification"
	ReminderAlarm        ReminderType = "alarm"
)

// IsValidReminderType checks if a reminder type is valid.
func IsValidReminderType(t ReminderType) bool {
	return t == ReminderNotification || t == ReminderAlarm
}

// Repetition is the recurrence rule for a reminder's trigger.
// The wire value for one-time reminders is "none" (V1 convention).
type Repetition string

const (
	RepeatDaily  Repetition = "daily"
	RepeatWeekly Repetition = "weekly"
	RepeatOnce   Repetition = "none"
)

// IsValidRepetition checks if a repetition rule is valid.
func IsValidRepetition(r Repetition) bool {
	return r == RepeatDaily || r == RepeatWeekly || r == RepeatOnce
}

// SnoozeRecord is one snooze action on a medicine log.
type SnoozeRecord struct {
	SnoozedAt       time.Time `json:"snoozedAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// MedicineReminder is a reminder definition: what to take, at what
// time of day, how often, and how loudly. NotificationID holds the
// opaque handle of the outstanding platform notification, at most one
// at a time.
type MedicineReminder struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Time           string       `json:"time"` // "HH:MM", no date
	Enabled        bool         `json:"enabled"`
	NotificationID string       `json:"notificationId,omitempty"`
	ReminderType   ReminderType `json:"reminderType"`
	Repetition     Repetition   `json:"repetition"`
}

// Clock parses the reminder's time-of-day.
func (m *MedicineReminder) Clock() (hour, minute int, err error) {
	return ParseTimeOfDay(m.Time)
}

// MedicineLog is the adherence record for one (medicine, day) pair.
// MedicineName is frozen at log-creation time: renaming or deleting
// the reminder later must not rewrite history.
type MedicineLog struct {
	ID            string         `json:"id"`
	MedicineID    string         `json:"medicineId"`
	MedicineName  string         `json:"medicineName"`
	ScheduledTime time.Time      `json:"scheduledTime"`
	ActualTime    *time.Time     `json:"actualTime,omitempty"`
	Status        MedicineStatus `json:"status"`
	Date          dates.DayKey   `json:"date"`
	SnoozeHistory []SnoozeRecord `json:"snoozeHistory"`
}

// ParseTimeOfDay parses an "HH:MM" string into hour and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day %q out of range", s)
	}
	return hour, minute, nil
}

// FormatTimeOfDay renders an hour and minute as "HH:MM".
func FormatTimeOfDay(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
