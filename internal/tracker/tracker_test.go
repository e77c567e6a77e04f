package tracker

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestlingapp/nestling/internal/dates"
	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/storage"
)

func setupTestDB(t *testing.T) *storage.DB {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// fixedClock returns a clock stuck at the given moment, plus a setter
// to advance it.
func fixedClock(start time.Time) (func() time.Time, func(time.Time)) {
	current := start
	return func() time.Time { return current }, func(t time.Time) { current = t }
}

var testDay = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

// =============================================================================
// Store Tests
// =============================================================================

func TestRecordAppendsInOrder(t *testing.T) {
	db := setupTestDB(t)
	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)

	for i := 0; i < 3; i++ {
		RecordEvent(s)
		advance(clock().Add(5 * time.Minute))
	}

	today := s.GetDay(dates.KeyFor(testDay))
	require.Len(t, today, 3)
	for i := 1; i < len(today); i++ {
		assert.True(t, today[i].Timestamp.After(today[i-1].Timestamp))
	}
}

func TestHydrationGate(t *testing.T) {
	db := setupTestDB(t)
	s := NewPeeStore(db)
	defer s.Close()

	assert.False(t, s.Hydrated())
	s.Load()
	assert.True(t, s.Hydrated())
}

func TestUndoLast(t *testing.T) {
	db := setupTestDB(t)
	s := NewPeeStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)

	RecordEvent(s)
	advance(testDay.Add(time.Minute))
	RecordEvent(s)

	s.UndoLast()
	today := s.Today()
	require.Len(t, today, 1)
	assert.Equal(t, testDay, today[0].Timestamp)
}

func TestUndoOnlyAffectsToday(t *testing.T) {
	db := setupTestDB(t)
	s := NewPoopStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)
	RecordEvent(s)

	// Next day: yesterday's entry must survive the undo.
	advance(testDay.AddDate(0, 0, 1))
	s.UndoLast()

	assert.Len(t, s.GetDay(dates.KeyFor(testDay)), 1)
}

func TestUndoEmptiesDayRemovesKey(t *testing.T) {
	db := setupTestDB(t)
	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	clock, _ := fixedClock(testDay)
	s.SetClock(clock)

	RecordEvent(s)
	require.Len(t, s.GetAllDays(), 1)

	s.UndoLast()
	assert.Empty(t, s.GetAllDays())
}

func TestUndoOnEmptyDayIsNoop(t *testing.T) {
	db := setupTestDB(t)
	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	s.UndoLast()
	assert.Empty(t, s.Today())
}

func TestUndoThenRecord(t *testing.T) {
	db := setupTestDB(t)
	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)

	RecordEvent(s)
	s.UndoLast()
	advance(testDay.Add(time.Hour))
	RecordEvent(s)

	today := s.Today()
	require.Len(t, today, 1)
	assert.Equal(t, testDay.Add(time.Hour), today[0].Timestamp)
}

func TestResetDay(t *testing.T) {
	db := setupTestDB(t)
	s := NewPeeStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)
	RecordEvent(s)

	nextDay := testDay.AddDate(0, 0, 1)
	advance(nextDay)
	RecordEvent(s)

	s.ResetDay(dates.KeyFor(testDay))

	assert.Empty(t, s.GetDay(dates.KeyFor(testDay)))
	assert.Len(t, s.GetDay(dates.KeyFor(nextDay)), 1)
}

func TestResetAllIdempotent(t *testing.T) {
	db := setupTestDB(t)
	s := NewPoopStore(db)
	defer s.Close()
	s.Load()

	RecordEvent(s)
	s.ResetAll()
	s.ResetAll()

	assert.Empty(t, s.Today())
	assert.Empty(t, s.GetAllDays())
}

func TestGetAllDaysSortedDescending(t *testing.T) {
	db := setupTestDB(t)
	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)

	// Record on three days, out of order relative to map iteration.
	RecordEvent(s)
	advance(testDay.AddDate(0, 0, 5))
	RecordEvent(s)
	advance(testDay.AddDate(0, 0, 2))
	RecordEvent(s)
	// Duplicate recording on an existing day must not duplicate the key.
	RecordEvent(s)

	days := s.GetAllDays()
	require.Len(t, days, 3)
	assert.Equal(t, dates.DayKey("2024-03-06"), days[0])
	assert.Equal(t, dates.DayKey("2024-03-03"), days[1])
	assert.Equal(t, dates.DayKey("2024-03-01"), days[2])
}

func TestEmptySentinelStable(t *testing.T) {
	db := setupTestDB(t)
	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	a := s.GetDay("2020-01-01")
	b := s.GetDay("2021-06-15")
	assert.Empty(t, a)
	assert.NotNil(t, a)
	// Same backing sentinel for every absent day.
	assert.Equal(t, reflect.ValueOf(a).Pointer(), reflect.ValueOf(b).Pointer())
}

func TestPersistenceRoundtrip(t *testing.T) {
	db := setupTestDB(t)

	s := NewKickStore(db)
	s.Load()
	clock, advance := fixedClock(testDay)
	s.SetClock(clock)
	RecordEvent(s)
	advance(testDay.Add(time.Minute))
	RecordEvent(s)
	s.Flush()
	s.Close()

	reloaded := NewKickStore(db)
	defer reloaded.Close()
	reloaded.Load()

	today := reloaded.GetDay(dates.KeyFor(testDay))
	require.Len(t, today, 2)
	assert.True(t, today[0].Timestamp.Equal(testDay))
}

func TestLoadDropsEmptyDayLists(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBlob(storage.KeyKickData,
		[]byte(`{"2024-03-01":[],"2024-03-02":[{"timestamp":"2024-03-02T08:00:00Z"}]}`)))

	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	days := s.GetAllDays()
	require.Len(t, days, 1)
	assert.Equal(t, dates.DayKey("2024-03-02"), days[0])
}

func TestLoadCorruptDataStartsEmpty(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBlob(storage.KeyPeeData, []byte("not json")))

	s := NewPeeStore(db)
	defer s.Close()
	s.Load()

	assert.True(t, s.Hydrated())
	assert.Empty(t, s.GetAllDays())
}

// =============================================================================
// Summary Tests
// =============================================================================

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize([]model.EventRecord{})
	assert.Nil(t, sum.Start)
	assert.Nil(t, sum.End)
	assert.Equal(t, 0, sum.Count)
}

func TestKickSummaryTenMinuteSession(t *testing.T) {
	db := setupTestDB(t)
	s := NewKickStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)

	// Ten kicks, five minutes apart, starting 09:00.
	for i := 0; i < 10; i++ {
		RecordEvent(s)
		advance(clock().Add(5 * time.Minute))
	}

	sum := SummarizeKicks(s.GetDay(dates.KeyFor(testDay)))
	assert.Equal(t, 10, sum.Count)
	require.NotNil(t, sum.Start)
	require.NotNil(t, sum.End)
	require.NotNil(t, sum.Tenth)
	assert.Equal(t, "09:00:00", sum.Start.Format("15:04:05"))
	assert.Equal(t, "09:45:00", sum.End.Format("15:04:05"))
	assert.Equal(t, "09:45:00", sum.Tenth.Format("15:04:05"))
}

func TestKickSummaryBelowMilestone(t *testing.T) {
	recs := make([]model.EventRecord, 9)
	for i := range recs {
		recs[i] = model.EventRecord{Timestamp: testDay.Add(time.Duration(i) * time.Minute)}
	}
	sum := SummarizeKicks(recs)
	assert.Equal(t, 9, sum.Count)
	assert.Nil(t, sum.Tenth)
}

// =============================================================================
// Feeding Tests
// =============================================================================

func TestRecordFeeding(t *testing.T) {
	db := setupTestDB(t)
	s := NewFeedingStore(db)
	defer s.Close()
	s.Load()

	clock, advance := fixedClock(testDay)
	s.SetClock(clock)

	ml := 120
	RecordFeeding(s, model.FeedFormula, &ml)
	advance(testDay.Add(2 * time.Hour))
	RecordFeeding(s, model.FeedBreast, nil)

	today := s.Today()
	require.Len(t, today, 2)
	assert.Equal(t, 120, model.TotalMl(today))
	assert.Equal(t, 1, model.BreastFeedCount(today))
	assert.Equal(t, 1, model.FormulaFeedCount(today))

	formula := TodayByType(s, model.FeedFormula)
	require.Len(t, formula, 1)
	require.NotNil(t, formula[0].AmountMl)
	assert.Equal(t, 120, *formula[0].AmountMl)
}

func TestFeedingPersistenceKeepsAmounts(t *testing.T) {
	db := setupTestDB(t)

	s := NewFeedingStore(db)
	s.Load()
	clock, _ := fixedClock(testDay)
	s.SetClock(clock)
	ml := 90
	RecordFeeding(s, model.FeedFormula, &ml)
	RecordFeeding(s, model.FeedBreast, nil)
	s.Flush()
	s.Close()

	reloaded := NewFeedingStore(db)
	defer reloaded.Close()
	reloaded.Load()

	today := reloaded.GetDay(dates.KeyFor(testDay))
	require.Len(t, today, 2)
	require.NotNil(t, today[0].AmountMl)
	assert.Equal(t, 90, *today[0].AmountMl)
	assert.Nil(t, today[1].AmountMl)
}
