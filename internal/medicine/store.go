// Package medicine implements the medicine reminder registry, the
// per-day adherence log, and the notification trigger policy that maps
// reminder definitions onto the platform scheduling capability.
package medicine

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/logging"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/storage"
)

// Store holds the reminder definitions and the day-keyed adherence
// logs. The two live under separate storage keys but share one
// lifecycle: loaded together at startup, wiped together by ResetAll.
type Store struct {
	db        *storage.DB
	medWriter *storage.BlobWriter
	logWriter *storage.BlobWriter
	clock     func() time.Time

	mu        sync.RWMutex
	medicines []*model.MedicineReminder
	logs      map[dates.DayKey][]*model.MedicineLog
	logDays   []dates.DayKey
	hydrated  bool

	// emptyLogs is the shared sentinel for absent days.
	emptyLogs []*model.MedicineLog
}

// NewStore creates an un-hydrated medicine store. Call Load before
// reading.
func NewStore(db *storage.DB) *Store {
	return &Store{
		db:        db,
		medWriter: storage.NewBlobWriter(db, storage.KeyMedicines),
		logWriter: storage.NewBlobWriter(db, storage.KeyMedicineLogs),
		clock:     time.Now,
		logs:      make(map[dates.DayKey][]*model.MedicineLog),
		emptyLogs: []*model.MedicineLog{},
	}
}

// SetClock overrides the time source. Tests only.
func (s *Store) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Load hydrates reminders and logs from durable storage, substituting
// defaults for fields absent in older documents: missing reminder type
// means standard notification, missing repetition means daily, missing
// snooze history means none.
func (s *Store) Load() {
	var medicines []*model.MedicineReminder
	if raw, err := s.db.GetBlob(storage.KeyMedicines); err == nil {
		if uerr := json.Unmarshal(raw, &medicines); uerr != nil {
			logging.Warn("discarding unreadable medicines",
				logging.KeyError, uerr)
			medicines = nil
		}
	} else if !storage.IsErrKeyNotFound(err) {
		logging.Warn("medicines load failed, starting empty",
			logging.KeyError, err)
	}
	for _, m := range medicines {
		if m.ReminderType == "" {
			m.ReminderType = model.ReminderNotification
		}
		if m.Repetition == "" {
			m.Repetition = model.RepeatDaily
		}
	}

	logs := make(map[dates.DayKey][]*model.MedicineLog)
	if raw, err := s.db.GetBlob(storage.KeyMedicineLogs); err == nil {
		if uerr := json.Unmarshal(raw, &logs); uerr != nil {
			logging.Warn("discarding unreadable medicine logs",
				logging.KeyError, uerr)
			logs = make(map[dates.DayKey][]*model.MedicineLog)
		}
	} else if !storage.IsErrKeyNotFound(err) {
		logging.Warn("medicine logs load failed, starting empty",
			logging.KeyError, err)
	}
	for day, dayLogs := range logs {
		if len(dayLogs) == 0 {
			delete(logs, day)
			continue
		}
		for _, l := range dayLogs {
			if l.SnoozeHistory == nil {
				l.SnoozeHistory = []model.SnoozeRecord{}
			}
		}
	}

	s.mu.Lock()
	s.medicines = medicines
	s.logs = logs
	s.logDays = computeLogDays(logs)
	s.hydrated = true
	s.mu.Unlock()
}

// Hydrated reports whether Load has completed.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// ResetAll wipes all reminders and all adherence logs. Used only when
// the user explicitly clears medicine data.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.medicines = nil
	s.logs = make(map[dates.DayKey][]*model.MedicineLog)
	s.logDays = computeLogDays(s.logs)
	s.persistMedicinesLocked()
	s.persistLogsLocked()
}

// Flush blocks until pending persistence writes have landed.
func (s *Store) Flush() {
	s.medWriter.Flush()
	s.logWriter.Flush()
}

// Close drains pending writes and releases the writers.
func (s *Store) Close() {
	s.medWriter.Close()
	s.logWriter.Close()
}

func (s *Store) persistMedicinesLocked() {
	medicines := s.medicines
	if medicines == nil {
		medicines = []*model.MedicineReminder{}
	}
	data, err := json.Marshal(medicines)
	if err != nil {
		logging.Warn("marshal failed, skipping persist",
			logging.KeyStorageKey, storage.KeyMedicines,
			logging.KeyError, err)
		return
	}
	s.medWriter.Enqueue(data)
}

func (s *Store) persistLogsLocked() {
	data, err := json.Marshal(s.logs)
	if err != nil {
		logging.Warn("marshal failed, skipping persist",
			logging.KeyStorageKey, storage.KeyMedicineLogs,
			logging.KeyError, err)
		return
	}
	s.logWriter.Enqueue(data)
}

func computeLogDays(logs map[dates.DayKey][]*model.MedicineLog) []dates.DayKey {
	days := make([]dates.DayKey, 0, len(logs))
	for day := range logs {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}
