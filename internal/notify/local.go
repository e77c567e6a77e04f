package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/nestlingapp/nestling/internal/logging"
)

// Sender delivers a notification that has come due.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// LocalScheduler is an in-process Scheduler. Daily and weekly
// repetition ride on a cron runner; one-shots use plain timers.
// It exists for long-running sessions (the today view) and for
// development; a mobile shell would supply a platform-backed
// Scheduler instead.
type LocalScheduler struct {
	sender Sender
	cron   *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
	timers  map[string]*time.Timer
}

// NewLocalScheduler creates a scheduler delivering through sender and
// starts its cron runner.
func NewLocalScheduler(sender Sender) *LocalScheduler {
	s := &LocalScheduler{
		sender:  sender,
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
		timers:  make(map[string]*time.Timer),
	}
	s.cron.Start()
	return s
}

// RequestPermission always succeeds locally; there is no OS gate to
// pass in-process.
func (s *LocalScheduler) RequestPermission(ctx context.Context) error {
	return nil
}

// ScheduleOneShot fires the notification once at the given moment.
func (s *LocalScheduler) ScheduleOneShot(ctx context.Context, at time.Time, n Notification) (string, error) {
	wait := time.Until(at)
	if wait < 0 {
		return "", fmt.Errorf("one-shot trigger at %s is in the past", at.Format(time.RFC3339))
	}

	handle := uuid.New().String()
	timer := time.AfterFunc(wait, func() {
		s.deliver(n)
		s.mu.Lock()
		delete(s.timers, handle)
		s.mu.Unlock()
	})

	s.mu.Lock()
	s.timers[handle] = timer
	s.mu.Unlock()
	return handle, nil
}

// ScheduleDaily fires the notification every day at hour:minute.
func (s *LocalScheduler) ScheduleDaily(ctx context.Context, hour, minute int, n Notification) (string, error) {
	return s.addCron(fmt.Sprintf("%d %d * * *", minute, hour), n)
}

// ScheduleWeekly fires the notification every week on the given
// weekday at hour:minute.
func (s *LocalScheduler) ScheduleWeekly(ctx context.Context, weekday time.Weekday, hour, minute int, n Notification) (string, error) {
	return s.addCron(fmt.Sprintf("%d %d * * %d", minute, hour, int(weekday)), n)
}

// Cancel stops a scheduled notification. Unknown handles are ignored.
func (s *LocalScheduler) Cancel(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[handle]; ok {
		s.cron.Remove(id)
		delete(s.entries, handle)
		return nil
	}
	if timer, ok := s.timers[handle]; ok {
		timer.Stop()
		delete(s.timers, handle)
	}
	return nil
}

// Stop halts the cron runner and all pending timers.
func (s *LocalScheduler) Stop() {
	s.cron.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
}

func (s *LocalScheduler) addCron(spec string, n Notification) (string, error) {
	id, err := s.cron.AddFunc(spec, func() { s.deliver(n) })
	if err != nil {
		return "", err
	}

	handle := uuid.New().String()
	s.mu.Lock()
	s.entries[handle] = id
	s.mu.Unlock()
	return handle, nil
}

func (s *LocalScheduler) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sender.Send(ctx, n); err != nil {
		logging.Warn("notification delivery failed",
			logging.KeyTrigger, n.Title,
			logging.KeyError, err)
	}
}

// LogSender delivers notifications to the structured log. It is the
// default sender when no webhook is configured.
type LogSender struct{}

// Send logs the notification.
func (LogSender) Send(ctx context.Context, n Notification) error {
	logging.Info("notification",
		"title", n.Title,
		"body", n.Body,
		"channel", n.Channel.ID,
		"priority", string(n.Channel.Priority))
	return nil
}
