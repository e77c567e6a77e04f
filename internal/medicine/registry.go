package medicine

import (
	"github.com/nestlingapp/nestling/internal/model"
)

// Registry operations: CRUD over reminder definitions, independent of
// any particular day. The registry performs no temporal validation;
// the once-in-the-past rule lives with the trigger policy.

// Add creates a reminder, enabled by default, and persists the list.
// Callers use the returned reminder to schedule a platform
// notification and attach its handle via SetNotificationID.
func (s *Store) Add(name, timeOfDay string, reminderType model.ReminderType, repetition model.Repetition) *model.MedicineReminder {
	med := &model.MedicineReminder{
		ID:           model.NewID(),
		Name:         name,
		Time:         timeOfDay,
		Enabled:      true,
		ReminderType: reminderType,
		Repetition:   repetition,
	}

	s.mu.Lock()
	s.medicines = append(s.medicines, med)
	s.persistMedicinesLocked()
	s.mu.Unlock()

	return med
}

// Update merges the given fields into an existing reminder. Nil fields
// are left untouched. Silently a no-op when the id is unknown.
type Update struct {
	Name         *string
	Time         *string
	Enabled      *bool
	ReminderType *model.ReminderType
	Repetition   *model.Repetition
}

// UpdateMedicine applies an Update to the reminder with the given id.
func (s *Store) UpdateMedicine(id string, upd Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	med := s.findLocked(id)
	if med == nil {
		return
	}
	if upd.Name != nil {
		med.Name = *upd.Name
	}
	if upd.Time != nil {
		med.Time = *upd.Time
	}
	if upd.Enabled != nil {
		med.Enabled = *upd.Enabled
	}
	if upd.ReminderType != nil {
		med.ReminderType = *upd.ReminderType
	}
	if upd.Repetition != nil {
		med.Repetition = *upd.Repetition
	}
	s.persistMedicinesLocked()
}

// Remove deletes the reminder. Historical adherence logs are left
// untouched; they carry their own copy of the name.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.medicines[:0]
	for _, m := range s.medicines {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(s.medicines) {
		return
	}
	s.medicines = kept
	s.persistMedicinesLocked()
}

// SetNotificationID attaches or overwrites the opaque handle of the
// outstanding scheduled platform notification.
func (s *Store) SetNotificationID(id, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	med := s.findLocked(id)
	if med == nil {
		return
	}
	med.NotificationID = handle
	s.persistMedicinesLocked()
}

// Get returns the reminder with the given id, or nil.
func (s *Store) Get(id string) *model.MedicineReminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(id)
}

// List returns all reminders in creation order. Callers must not
// mutate the returned slice.
func (s *Store) List() []*model.MedicineReminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.medicines
}

// findLocked returns the reminder with the given id. Caller holds mu.
func (s *Store) findLocked(id string) *model.MedicineReminder {
	for _, m := range s.medicines {
		if m.ID == id {
			return m
		}
	}
	return nil
}
