// Package notify defines the platform-notification capability nestling
// consumes: one-shot, daily, and weekly scheduling plus cancellation,
// behind a permission gate. The core never registers OS notifications
// itself; it hands trigger descriptors to a Scheduler.
package notify

import (
	"context"
	"fmt"
	"time"
)

// Priority is the delivery priority of a notification channel.
type Priority string

const (
	PriorityHigh Priority = "high"
	PriorityMax  Priority = "max"
)

// Channel is a presentation tier. It changes how a notification is
// delivered, never when.
type Channel struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Priority  Priority `json:"priority"`
	BypassDND bool     `json:"bypass_dnd"`
	// Vibration is the on/off pattern in milliseconds, starting with
	// an initial delay.
	Vibration []int `json:"vibration"`
}

// The two channels nestling delivers on: standard reminders and
// intrusive alarms. Alarms get maximum priority, a longer vibration
// pattern, and bypass do-not-disturb suppression.
var (
	ChannelStandard = Channel{
		ID:        "medicine-reminders",
		Name:      "Medicine Reminders",
		Priority:  PriorityHigh,
		Vibration: []int{0, 250, 250, 250},
	}
	ChannelAlarm = Channel{
		ID:        "medicine-alarms",
		Name:      "Medicine Alarms",
		Priority:  PriorityMax,
		BypassDND: true,
		Vibration: []int{0, 500, 500, 500, 500, 500},
	}
)

// Notification is the content to deliver when a trigger fires.
type Notification struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Channel Channel           `json:"channel"`
	Data    map[string]string `json:"data,omitempty"`
}

// TriggerKind discriminates trigger descriptors.
type TriggerKind string

const (
	TriggerOneShot TriggerKind = "one-shot"
	TriggerDaily   TriggerKind = "daily"
	TriggerWeekly  TriggerKind = "weekly"
)

// Trigger describes what to ask the platform to schedule.
type Trigger struct {
	Kind TriggerKind

	// At is the absolute moment, one-shot triggers only.
	At time.Time

	// Hour and Minute apply to daily and weekly triggers.
	Hour   int
	Minute int

	// Weekday applies to weekly triggers only.
	Weekday time.Weekday

	// Channel selects the presentation tier.
	Channel Channel
}

// Scheduler is the platform notification capability. Implementations
// return an opaque handle per scheduled notification.
type Scheduler interface {
	// RequestPermission must succeed before any scheduling call.
	RequestPermission(ctx context.Context) error
	ScheduleOneShot(ctx context.Context, at time.Time, n Notification) (string, error)
	ScheduleDaily(ctx context.Context, hour, minute int, n Notification) (string, error)
	ScheduleWeekly(ctx context.Context, weekday time.Weekday, hour, minute int, n Notification) (string, error)
	Cancel(ctx context.Context, handle string) error
}

// Schedule registers a trigger descriptor with the scheduler and
// returns the platform handle.
func Schedule(ctx context.Context, s Scheduler, t Trigger, n Notification) (string, error) {
	n.Channel = t.Channel
	switch t.Kind {
	case TriggerOneShot:
		return s.ScheduleOneShot(ctx, t.At, n)
	case TriggerDaily:
		return s.ScheduleDaily(ctx, t.Hour, t.Minute, n)
	case TriggerWeekly:
		return s.ScheduleWeekly(ctx, t.Weekday, t.Hour, t.Minute, n)
	default:
		return "", fmt.Errorf("unknown trigger kind %q", t.Kind)
	}
}
