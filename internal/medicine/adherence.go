package medicine

import (
	"time"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/model"
)

// Adherence operations: at most one log per (medicine, day). Marking a
// medicine on a day that already has a log updates it in place,
// preserving its id and snooze history, rather than creating a
// duplicate. Marks for an unknown medicine id are silent no-ops.

// MarkTaken records the medicine as taken today. actualTime defaults
// to now when nil.
func (s *Store) MarkTaken(medicineID string, actualTime *time.Time) {
	now := s.clock()
	at := now
	if actualTime != nil {
		at = *actualTime
	}
	s.upsertLog(medicineID, func(log *model.MedicineLog) {
		log.Status = model.StatusTaken
		log.ActualTime = &at
	})
}

// MarkMissed records the medicine as missed today.
func (s *Store) MarkMissed(medicineID string) {
	s.upsertLog(medicineID, func(log *model.MedicineLog) {
		log.Status = model.StatusMissed
		log.ActualTime = nil
	})
}

// MarkSnoozed records a snooze of the given duration. Every call
// appends to the snooze history, even repeated snoozes of the same
// medicine on the same day.
func (s *Store) MarkSnoozed(medicineID string, durationMinutes int) {
	now := s.clock()
	s.upsertLog(medicineID, func(log *model.MedicineLog) {
		log.Status = model.StatusSnoozed
		log.ActualTime = nil
		log.SnoozeHistory = append(log.SnoozeHistory, model.SnoozeRecord{
			SnoozedAt:       now,
			DurationMinutes: durationMinutes,
		})
	})
}

// GetTodayLogs returns today's adherence logs.
func (s *Store) GetTodayLogs() []*model.MedicineLog {
	return s.GetLogsForDate(dates.KeyFor(s.clock()))
}

// GetLogsForDate returns the day's adherence logs, or the shared empty
// sentinel when the day is absent. Callers must not mutate the
// returned slice.
func (s *Store) GetLogsForDate(day dates.DayKey) []*model.MedicineLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if logs, ok := s.logs[day]; ok {
		return logs
	}
	return s.emptyLogs
}

// GetAllLogDays returns the cached log day list, sorted descending.
func (s *Store) GetAllLogDays() []dates.DayKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logDays
}

// upsertLog finds or creates today's log for the medicine and applies
// mutate to it. The medicine name is copied onto the log at creation
// and deliberately never refreshed: renaming or deleting the reminder
// must not rewrite history.
func (s *Store) upsertLog(medicineID string, mutate func(*model.MedicineLog)) {
	now := s.clock()
	day := dates.KeyFor(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	med := s.findLocked(medicineID)
	if med == nil {
		return
	}

	var log *model.MedicineLog
	for _, l := range s.logs[day] {
		if l.MedicineID == medicineID {
			log = l
			break
		}
	}
	if log == nil {
		log = &model.MedicineLog{
			ID:            model.NewID(),
			MedicineID:    medicineID,
			MedicineName:  med.Name,
			ScheduledTime: now,
			Status:        model.StatusPending,
			Date:          day,
			SnoozeHistory: []model.SnoozeRecord{},
		}
		s.logs[day] = append(s.logs[day], log)
		s.logDays = computeLogDays(s.logs)
	}

	mutate(log)
	s.persistLogsLocked()
}
