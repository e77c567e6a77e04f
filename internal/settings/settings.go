// Package settings holds the user-tunable knobs: per-tracker daily
// goals, feeding amount options, tracker visibility, and the app life
// stage (pregnancy vs post-birth).
package settings

import (
	"encoding/json"
	"sync"

	"github.com/nestlingapp/nestling/internal/logging"
	"github.com/nestlingapp/nestling/internal/storage"
)

// Settings is the persisted document under settingsV2. Pointer fields
// would complicate every read; instead Load overlays the stored
// document onto the defaults, so documents from older versions simply
// keep default values for fields they lack.
type Settings struct {
	KickGoal    int `json:"kickGoal"`
	PoopGoal    int `json:"poopGoal"`
	PeeGoal     int `json:"peeGoal"`
	FeedingGoal int `json:"feedingGoal"`

	FeedingMlIncrement      int  `json:"feedingMlIncrement"`
	FeedingLogAmount        bool `json:"feedingLogAmount"`
	FeedingSeparateSections bool `json:"feedingSeparateSections"`

	PeeEnabled         bool `json:"peeEnabled"`
	PoopEnabled        bool `json:"poopEnabled"`
	BreastFeedEnabled  bool `json:"breastFeedEnabled"`
	FormulaFeedEnabled bool `json:"formulaFeedEnabled"`
}

// Defaults returns the documented default settings.
func Defaults() Settings {
	return Settings{
		KickGoal:                10,
		PoopGoal:                10,
		PeeGoal:                 10,
		FeedingGoal:             10,
		FeedingMlIncrement:      30,
		FeedingLogAmount:        true,
		FeedingSeparateSections: true,
		PeeEnabled:              true,
		PoopEnabled:             true,
		BreastFeedEnabled:       true,
		FormulaFeedEnabled:      true,
	}
}

// Store persists Settings under a fixed key.
type Store struct {
	writer *storage.BlobWriter
	db     *storage.DB

	mu       sync.RWMutex
	current  Settings
	hydrated bool
}

// NewStore creates an un-hydrated settings store.
func NewStore(db *storage.DB) *Store {
	return &Store{
		db:      db,
		writer:  storage.NewBlobWriter(db, storage.KeySettings),
		current: Defaults(),
	}
}

// Load hydrates settings, overlaying the stored document on the
// defaults. Absent or unreadable data leaves the defaults in place.
func (s *Store) Load() {
	current := Defaults()

	raw, err := s.db.GetBlob(storage.KeySettings)
	switch {
	case err == nil:
		if uerr := json.Unmarshal(raw, &current); uerr != nil {
			logging.Warn("discarding unreadable settings", logging.KeyError, uerr)
			current = Defaults()
		}
	case storage.IsErrKeyNotFound(err):
	default:
		logging.Warn("settings load failed, using defaults", logging.KeyError, err)
	}

	s.mu.Lock()
	s.current = current
	s.hydrated = true
	s.mu.Unlock()
}

// Hydrated reports whether Load has completed.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Get returns a snapshot of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies a mutation to the settings and persists the result.
// Validation happens at the CLI boundary; the store assumes
// pre-validated values.
func (s *Store) Update(mutate func(*Settings)) {
	s.mu.Lock()
	mutate(&s.current)
	s.persistLocked()
	s.mu.Unlock()
}

// Flush blocks until pending persistence writes have landed.
func (s *Store) Flush() {
	s.writer.Flush()
}

// Close drains pending writes and releases the writer.
func (s *Store) Close() {
	s.writer.Close()
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.current)
	if err != nil {
		logging.Warn("marshal failed, skipping persist",
			logging.KeyStorageKey, storage.KeySettings,
			logging.KeyError, err)
		return
	}
	s.writer.Enqueue(data)
}
