package medicine

import (
	"time"

	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/notify"
)

// Trigger policy: the single place that maps a reminder definition to
// what the platform should be asked to schedule. Intensity selects the
// channel, never the timing.

// ChannelFor maps a reminder intensity to its delivery channel.
func ChannelFor(t model.ReminderType) notify.Channel {
	if t == model.ReminderAlarm {
		return notify.ChannelAlarm
	}
	return notify.ChannelStandard
}

// BuildTrigger computes the trigger descriptor for a reminder.
//
// For one-time reminders the time-of-day is combined with targetDate;
// a resulting moment that is not in the future fails with
// errors.ErrScheduleInPast. A nil targetDate means "today", rolling to
// tomorrow when today's slot has already passed. Daily and weekly
// repetition never fail on timing; weekly pins the current weekday.
func BuildTrigger(timeOfDay string, repetition model.Repetition, intensity model.ReminderType, targetDate *time.Time, now time.Time) (notify.Trigger, error) {
	hour, minute, err := model.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return notify.Trigger{}, errors.Wrap(errors.ErrInvalidTimeOfDay, err.Error())
	}

	channel := ChannelFor(intensity)

	switch repetition {
	case model.RepeatOnce:
		base := now
		if targetDate != nil {
			base = *targetDate
		}
		at := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
		if !at.After(now) {
			if targetDate != nil {
				return notify.Trigger{}, errors.ErrScheduleInPast
			}
			at = at.AddDate(0, 0, 1)
		}
		return notify.Trigger{
			Kind:    notify.TriggerOneShot,
			At:      at,
			Channel: channel,
		}, nil

	case model.RepeatDaily:
		return notify.Trigger{
			Kind:    notify.TriggerDaily,
			Hour:    hour,
			Minute:  minute,
			Channel: channel,
		}, nil

	case model.RepeatWeekly:
		return notify.Trigger{
			Kind:    notify.TriggerWeekly,
			Weekday: now.Weekday(),
			Hour:    hour,
			Minute:  minute,
			Channel: channel,
		}, nil

	default:
		return notify.Trigger{}, errors.ErrInvalidRepetition
	}
}

// SnoozeTrigger computes a one-shot trigger at now plus the snooze
// duration. It is independent of the reminder's stored schedule and
// leaves it untouched.
func SnoozeTrigger(now time.Time, durationMinutes int, intensity model.ReminderType) notify.Trigger {
	return notify.Trigger{
		Kind:    notify.TriggerOneShot,
		At:      now.Add(time.Duration(durationMinutes) * time.Minute),
		Channel: ChannelFor(intensity),
	}
}

// Content builds the notification content for a reminder.
func Content(med *model.MedicineReminder) notify.Notification {
	title := "Medicine Reminder"
	if med.ReminderType == model.ReminderAlarm {
		title = "Medicine Alarm"
	}
	return notify.Notification{
		Title:   title,
		Body:    "Time to take: " + med.Name,
		Channel: ChannelFor(med.ReminderType),
		Data: map[string]string{
			"medicineId":   med.ID,
			"reminderType": string(med.ReminderType),
		},
	}
}
