package medicine

import (
	"context"
	"time"

	"github.com/nestlingapp/nestling/internal/errors"
	"github.com/nestlingapp/nestling/internal/logging"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/notify"
)

// Service glues the reminder registry to the platform scheduling
// capability. An un-schedulable one-time reminder is useless, so that
// one failure path rolls the reminder back and reports; every other
// scheduling failure degrades silently — the reminder exists but will
// not fire.
type Service struct {
	store     *Store
	scheduler notify.Scheduler
	clock     func() time.Time
}

// NewService creates a scheduling service over the store.
func NewService(store *Store, scheduler notify.Scheduler) *Service {
	return &Service{
		store:     store,
		scheduler: scheduler,
		clock:     time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (s *Service) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Store returns the underlying medicine store.
func (s *Service) Store() *Store {
	return s.store
}

// AddWithSchedule creates a reminder and schedules its notification.
// For once-repetition reminders a scheduling failure removes the
// just-created reminder and returns an error for the user to see.
func (s *Service) AddWithSchedule(ctx context.Context, name, timeOfDay string, reminderType model.ReminderType, repetition model.Repetition, targetDate *time.Time) (*model.MedicineReminder, error) {
	med := s.store.Add(name, timeOfDay, reminderType, repetition)

	handle, err := s.schedule(ctx, med, targetDate)
	if err != nil {
		if repetition == model.RepeatOnce {
			s.store.Remove(med.ID)
			return nil, errors.Wrap(err, "could not schedule one-time reminder")
		}
		logging.Warn("reminder created but not scheduled",
			logging.KeyMedicineID, med.ID,
			logging.KeyMedicine, med.Name,
			logging.KeyError, err)
		return med, nil
	}

	s.store.SetNotificationID(med.ID, handle)
	return med, nil
}

// SetEnabled toggles a reminder, cancelling its notification when
// disabling and rescheduling when enabling.
func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) error {
	med := s.store.Get(id)
	if med == nil {
		return errors.ErrMedicineNotFound
	}

	if med.NotificationID != "" {
		s.cancel(ctx, med.NotificationID)
		s.store.SetNotificationID(id, "")
	}
	s.store.UpdateMedicine(id, Update{Enabled: &enabled})

	if !enabled {
		return nil
	}

	handle, err := s.schedule(ctx, s.store.Get(id), nil)
	if err != nil {
		logging.Warn("reminder enabled but not scheduled",
			logging.KeyMedicineID, id,
			logging.KeyError, err)
		return nil
	}
	s.store.SetNotificationID(id, handle)
	return nil
}

// Remove cancels the reminder's notification and deletes it. Past
// adherence logs are retained.
func (s *Service) Remove(ctx context.Context, id string) error {
	med := s.store.Get(id)
	if med == nil {
		return errors.ErrMedicineNotFound
	}
	if med.NotificationID != "" {
		s.cancel(ctx, med.NotificationID)
	}
	s.store.Remove(id)
	return nil
}

// Snooze records the snooze on today's adherence log and schedules a
// one-shot nudge at now plus the duration. The reminder's own schedule
// is untouched. Delivery failure degrades silently.
func (s *Service) Snooze(ctx context.Context, id string, durationMinutes int) error {
	med := s.store.Get(id)
	if med == nil {
		return errors.ErrMedicineNotFound
	}

	s.store.MarkSnoozed(id, durationMinutes)

	trigger := SnoozeTrigger(s.clock(), durationMinutes, med.ReminderType)
	if err := s.scheduler.RequestPermission(ctx); err != nil {
		logging.Warn("snooze not scheduled", logging.KeyMedicineID, id, logging.KeyError, err)
		return nil
	}
	if _, err := notify.Schedule(ctx, s.scheduler, trigger, Content(med)); err != nil {
		logging.Warn("snooze not scheduled", logging.KeyMedicineID, id, logging.KeyError, err)
	}
	return nil
}

// schedule builds the trigger for a reminder and registers it.
func (s *Service) schedule(ctx context.Context, med *model.MedicineReminder, targetDate *time.Time) (string, error) {
	trigger, err := BuildTrigger(med.Time, med.Repetition, med.ReminderType, targetDate, s.clock())
	if err != nil {
		return "", err
	}
	if err := s.scheduler.RequestPermission(ctx); err != nil {
		return "", errors.Wrap(errors.ErrPermissionDenied, err.Error())
	}
	handle, err := notify.Schedule(ctx, s.scheduler, trigger, Content(med))
	if err != nil {
		return "", errors.Wrap(errors.ErrSchedulingFailed, err.Error())
	}
	return handle, nil
}

func (s *Service) cancel(ctx context.Context, handle string) {
	if err := s.scheduler.Cancel(ctx, handle); err != nil {
		logging.Warn("could not cancel scheduled notification",
			logging.KeyHandle, handle,
			logging.KeyError, err)
	}
}
