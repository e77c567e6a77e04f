// Package tracker implements the day-keyed event log shared by every
// tap-to-record tracker (kick, pee, poop, feeding).
//
// A Store is an append-only journal of timestamped records partitioned
// by local calendar day, with undo-last and reset operations. All
// mutations update in-memory state synchronously and then persist the
// full mapping asynchronously, best effort; reads never wait on a
// write.
package tracker

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/logging"
	"github.com/nestlingapp/nestling/internal/storage"
)

// Record is any timestamped entry a Store can journal.
type Record interface {
	When() time.Time
}

// Store is a day-keyed event log for one record type.
type Store[T Record] struct {
	name   string
	key    string
	writer *storage.BlobWriter
	db     *storage.DB
	clock  func() time.Time

	mu       sync.RWMutex
	data     map[dates.DayKey][]T
	days     []dates.DayKey
	hydrated bool

	// empty is the shared sentinel returned for absent days, so
	// repeated no-data reads stay referentially stable for consumers.
	empty []T
}

// New creates an un-hydrated store persisting under the given storage
// key. Call Load before reading; reads before then must not be treated
// as confirmed empty.
func New[T Record](db *storage.DB, name, key string) *Store[T] {
	return &Store[T]{
		name:   name,
		key:    key,
		db:     db,
		writer: storage.NewBlobWriter(db, key),
		clock:  time.Now,
		data:   make(map[dates.DayKey][]T),
		empty:  []T{},
	}
}

// SetClock overrides the time source. Tests only.
func (s *Store[T]) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Load hydrates the store from durable storage. Absent or unreadable
// data is treated as "no data yet"; the store still becomes hydrated.
func (s *Store[T]) Load() {
	data := make(map[dates.DayKey][]T)

	raw, err := s.db.GetBlob(s.key)
	switch {
	case err == nil:
		if uerr := json.Unmarshal(raw, &data); uerr != nil {
			logging.Warn("discarding unreadable store data",
				logging.KeyStore, s.name,
				logging.KeyError, uerr)
			data = make(map[dates.DayKey][]T)
		}
	case storage.IsErrKeyNotFound(err):
		// First run for this store.
	default:
		logging.Warn("load failed, starting empty",
			logging.KeyStore, s.name,
			logging.KeyError, err)
	}

	// Stored empty day lists would violate the never-stored-empty
	// invariant; drop them rather than trust them.
	for day, recs := range data {
		if len(recs) == 0 {
			delete(data, day)
		}
	}

	s.mu.Lock()
	s.data = data
	s.days = computeDays(data)
	s.hydrated = true
	s.mu.Unlock()
}

// Hydrated reports whether Load has completed.
func (s *Store[T]) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Record constructs a record via build, stamped with the current
// moment, appends it to today's log, and persists asynchronously.
// The constructed record is returned.
func (s *Store[T]) Record(build func(now time.Time) T) T {
	now := s.clock()
	day := dates.KeyFor(now)
	rec := build(now)

	s.mu.Lock()
	s.data[day] = append(s.data[day], rec)
	s.days = computeDays(s.data)
	s.persistLocked()
	s.mu.Unlock()

	return rec
}

// UndoLast removes the most recent record from today's log only.
// No-op if today has no records. An emptied day is deleted outright,
// never left as an empty list.
func (s *Store[T]) UndoLast() {
	day := dates.KeyFor(s.clock())

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.data[day]
	if len(recs) == 0 {
		return
	}
	if len(recs) == 1 {
		delete(s.data, day)
	} else {
		// Copy so slices handed out before the undo keep their view.
		s.data[day] = append([]T(nil), recs[:len(recs)-1]...)
	}
	s.days = computeDays(s.data)
	s.persistLocked()
}

// ResetDay deletes all records for the given day. No-op if absent.
func (s *Store[T]) ResetDay(day dates.DayKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[day]; !ok {
		return
	}
	delete(s.data, day)
	s.days = computeDays(s.data)
	s.persistLocked()
}

// ResetToday deletes all of today's records.
func (s *Store[T]) ResetToday() {
	s.ResetDay(dates.KeyFor(s.clock()))
}

// ResetAll clears the entire store.
func (s *Store[T]) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[dates.DayKey][]T)
	s.days = computeDays(s.data)
	s.persistLocked()
}

// GetDay returns the day's records in insertion order, or the shared
// empty sentinel if the day is absent. Callers must not mutate the
// returned slice.
func (s *Store[T]) GetDay(day dates.DayKey) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if recs, ok := s.data[day]; ok {
		return recs
	}
	return s.empty
}

// Today returns today's records.
func (s *Store[T]) Today() []T {
	return s.GetDay(dates.KeyFor(s.clock()))
}

// GetAllDays returns the cached day list, sorted descending, most
// recent first.
func (s *Store[T]) GetAllDays() []dates.DayKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.days
}

// Flush blocks until all pending persistence writes have landed.
func (s *Store[T]) Flush() {
	s.writer.Flush()
}

// Close drains pending writes and releases the writer.
func (s *Store[T]) Close() {
	s.writer.Close()
}

// persistLocked serializes current state and hands it to the async
// writer. Caller holds mu. Failures are the writer's problem and are
// swallowed there.
func (s *Store[T]) persistLocked() {
	data, err := json.Marshal(s.data)
	if err != nil {
		logging.Warn("marshal failed, skipping persist",
			logging.KeyStore, s.name,
			logging.KeyError, err)
		return
	}
	s.writer.Enqueue(data)
}

func computeDays[T any](data map[dates.DayKey][]T) []dates.DayKey {
	days := make([]dates.DayKey, 0, len(data))
	for day := range data {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}
