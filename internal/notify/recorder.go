package notify

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Recorder is a Scheduler that records every call instead of touching
// any platform. It backs tests and the --dry-run style flows where
// scheduling side effects are unwanted.
type Recorder struct {
	mu sync.Mutex

	// PermissionErr, when set, is returned by RequestPermission.
	PermissionErr error
	// ScheduleErr, when set, fails every scheduling call.
	ScheduleErr error

	next      int
	Scheduled []ScheduledCall
	Cancelled []string
}

// ScheduledCall captures one scheduling invocation.
type ScheduledCall struct {
	Handle       string
	Kind         TriggerKind
	At           time.Time
	Hour, Minute int
	Weekday      time.Weekday
	Notification Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RequestPermission returns PermissionErr.
func (r *Recorder) RequestPermission(ctx context.Context) error {
	return r.PermissionErr
}

// ScheduleOneShot records a one-shot call.
func (r *Recorder) ScheduleOneShot(ctx context.Context, at time.Time, n Notification) (string, error) {
	return r.record(ScheduledCall{Kind: TriggerOneShot, At: at, Notification: n})
}

// ScheduleDaily records a daily call.
func (r *Recorder) ScheduleDaily(ctx context.Context, hour, minute int, n Notification) (string, error) {
	return r.record(ScheduledCall{Kind: TriggerDaily, Hour: hour, Minute: minute, Notification: n})
}

// ScheduleWeekly records a weekly call.
func (r *Recorder) ScheduleWeekly(ctx context.Context, weekday time.Weekday, hour, minute int, n Notification) (string, error) {
	return r.record(ScheduledCall{Kind: TriggerWeekly, Weekday: weekday, Hour: hour, Minute: minute, Notification: n})
}

// Cancel records a cancellation.
func (r *Recorder) Cancel(ctx context.Context, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cancelled = append(r.Cancelled, handle)
	return nil
}

// Last returns the most recent scheduled call, or false if none.
func (r *Recorder) Last() (ScheduledCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Scheduled) == 0 {
		return ScheduledCall{}, false
	}
	return r.Scheduled[len(r.Scheduled)-1], true
}

func (r *Recorder) record(call ScheduledCall) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ScheduleErr != nil {
		return "", r.ScheduleErr
	}
	r.next++
	call.Handle = fmt.Sprintf("scheduled-%d", r.next)
	r.Scheduled = append(r.Scheduled, call)
	return call.Handle, nil
}
