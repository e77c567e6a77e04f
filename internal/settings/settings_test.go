package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestlingapp/nestling/internal/storage"
)

func setupTestDB(t *testing.T) *storage.DB {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// Settings Store Tests
// =============================================================================

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 10, d.KickGoal)
	assert.Equal(t, 10, d.PeeGoal)
	assert.Equal(t, 10, d.PoopGoal)
	assert.Equal(t, 10, d.FeedingGoal)
	assert.Equal(t, 30, d.FeedingMlIncrement)
	assert.True(t, d.FeedingLogAmount)
	assert.True(t, d.FeedingSeparateSections)
	assert.True(t, d.PeeEnabled)
	assert.True(t, d.PoopEnabled)
	assert.True(t, d.BreastFeedEnabled)
	assert.True(t, d.FormulaFeedEnabled)
}

func TestLoadWithoutDataUsesDefaults(t *testing.T) {
	s := NewStore(setupTestDB(t))
	defer s.Close()
	s.Load()

	assert.True(t, s.Hydrated())
	assert.Equal(t, Defaults(), s.Get())
}

func TestLoadOverlaysStoredOnDefaults(t *testing.T) {
	db := setupTestDB(t)
	// A partial older document: only kickGoal present. Every other
	// field keeps its default.
	require.NoError(t, db.SetBlob(storage.KeySettings, []byte(`{"kickGoal":15}`)))

	s := NewStore(db)
	defer s.Close()
	s.Load()

	got := s.Get()
	assert.Equal(t, 15, got.KickGoal)
	assert.Equal(t, 10, got.PeeGoal)
	assert.True(t, got.FeedingLogAmount)
}

func TestLoadCorruptFallsBackToDefaults(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBlob(storage.KeySettings, []byte("{broken")))

	s := NewStore(db)
	defer s.Close()
	s.Load()

	assert.Equal(t, Defaults(), s.Get())
}

func TestUpdatePersists(t *testing.T) {
	db := setupTestDB(t)

	s := NewStore(db)
	s.Load()
	s.Update(func(st *Settings) {
		st.KickGoal = 12
		st.PeeEnabled = false
	})
	s.Flush()
	s.Close()

	reloaded := NewStore(db)
	defer reloaded.Close()
	reloaded.Load()
	got := reloaded.Get()
	assert.Equal(t, 12, got.KickGoal)
	assert.False(t, got.PeeEnabled)
}

// =============================================================================
// Field Registry Tests
// =============================================================================

func TestFieldsSortedAndComplete(t *testing.T) {
	fields := Fields()
	require.NotEmpty(t, fields)
	for i := 1; i < len(fields); i++ {
		assert.Less(t, fields[i-1].Name, fields[i].Name)
	}

	for _, name := range []string{
		"kick-goal", "pee-goal", "poop-goal", "feeding-goal",
		"feeding-ml-increment", "feeding-log-amount", "feeding-separate-sections",
		"pee-enabled", "poop-enabled", "breast-enabled", "formula-enabled",
	} {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestIntFieldApply(t *testing.T) {
	field, ok := Lookup("kick-goal")
	require.True(t, ok)

	s := Defaults()
	require.NoError(t, field.Apply(&s, "12"))
	assert.Equal(t, 12, s.KickGoal)
	assert.Equal(t, "12", field.Value(s))

	assert.Error(t, field.Apply(&s, "abc"))
	assert.Error(t, field.Apply(&s, "0"))
	assert.Error(t, field.Apply(&s, "-3"))
	assert.Equal(t, 12, s.KickGoal)
}

func TestBoolFieldApply(t *testing.T) {
	field, ok := Lookup("pee-enabled")
	require.True(t, ok)

	s := Defaults()
	require.NoError(t, field.Apply(&s, "false"))
	assert.False(t, s.PeeEnabled)
	assert.Equal(t, "false", field.Value(s))

	assert.Error(t, field.Apply(&s, "maybe"))
}

// =============================================================================
// App Mode Tests
// =============================================================================

func TestModeStoreDefaults(t *testing.T) {
	s := NewModeStore(setupTestDB(t))
	defer s.Close()

	assert.False(t, s.Hydrated())
	s.Load()
	assert.True(t, s.Hydrated())
	assert.Equal(t, ModeNotSet, s.Mode())
}

func TestModeStoreRoundtrip(t *testing.T) {
	db := setupTestDB(t)

	s := NewModeStore(db)
	s.Load()
	s.SetMode(ModePregnant)
	s.Flush()
	s.Close()

	reloaded := NewModeStore(db)
	defer reloaded.Close()
	reloaded.Load()
	assert.Equal(t, ModePregnant, reloaded.Mode())
}

func TestModeStoreInvalidValueLoadsNotSet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBlob(storage.KeyAppMode, []byte("hatchling")))

	s := NewModeStore(db)
	defer s.Close()
	s.Load()
	assert.Equal(t, ModeNotSet, s.Mode())
}

func TestIsValidAppMode(t *testing.T) {
	assert.True(t, IsValidAppMode(ModePregnant))
	assert.True(t, IsValidAppMode(ModeBorn))
	assert.False(t, IsValidAppMode(ModeNotSet))
	assert.False(t, IsValidAppMode(AppMode("other")))
}
