package settings

import (
	"sync"

	"github.com/nestlingapp/nestling/internal/logging"
	"github.com/nestlingapp/nestling/internal/storage"
)

// AppMode is the life stage the app is tracking.
type AppMode string

const (
	ModeNotSet   AppMode = "not_set"
	ModePregnant AppMode = "pregnant"
	ModeBorn     AppMode = "born"
)

// IsValidAppMode checks if a mode is one the user can select.
func IsValidAppMode(m AppMode) bool {
	return m == ModePregnant || m == ModeBorn
}

// ModeStore persists the app mode under a fixed key. The value is
// stored as a bare string, not JSON; unrecognized values load as
// ModeNotSet.
type ModeStore struct {
	writer *storage.BlobWriter
	db     *storage.DB

	mu       sync.RWMutex
	mode     AppMode
	hydrated bool
}

// NewModeStore creates an un-hydrated mode store.
func NewModeStore(db *storage.DB) *ModeStore {
	return &ModeStore{
		db:     db,
		writer: storage.NewBlobWriter(db, storage.KeyAppMode),
		mode:   ModeNotSet,
	}
}

// Load hydrates the mode from storage.
func (s *ModeStore) Load() {
	mode := ModeNotSet

	raw, err := s.db.GetBlob(storage.KeyAppMode)
	switch {
	case err == nil:
		if m := AppMode(raw); IsValidAppMode(m) {
			mode = m
		}
	case storage.IsErrKeyNotFound(err):
	default:
		logging.Warn("app mode load failed", logging.KeyError, err)
	}

	s.mu.Lock()
	s.mode = mode
	s.hydrated = true
	s.mu.Unlock()
}

// Hydrated reports whether Load has completed.
func (s *ModeStore) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Mode returns the current app mode.
func (s *ModeStore) Mode() AppMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode sets and persists the app mode.
func (s *ModeStore) SetMode(mode AppMode) {
	s.mu.Lock()
	s.mode = mode
	s.writer.Enqueue([]byte(mode))
	s.mu.Unlock()
}

// Flush blocks until pending persistence writes have landed.
func (s *ModeStore) Flush() {
	s.writer.Flush()
}

// Close drains pending writes and releases the writer.
func (s *ModeStore) Close() {
	s.writer.Close()
}
