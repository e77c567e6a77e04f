package tracker

import (
	"time"

	"github.com/nestlingapp/nestling/internal/model"
	"github.com/nestlingapp/nestling/internal/storage"
)

// EventStore journals plain timestamp records (kick, pee, poop).
type EventStore = Store[model.EventRecord]

// FeedingStore journals feeding records.
type FeedingStore = Store[model.FeedingRecord]

// NewKickStore creates the kick counter store.
func NewKickStore(db *storage.DB) *EventStore {
	return New[model.EventRecord](db, "kick", storage.KeyKickData)
}

// NewPeeStore creates the wet-diaper store.
func NewPeeStore(db *storage.DB) *EventStore {
	return New[model.EventRecord](db, "pee", storage.KeyPeeData)
}

// NewPoopStore creates the dirty-diaper store.
func NewPoopStore(db *storage.DB) *EventStore {
	return New[model.EventRecord](db, "poop", storage.KeyPoopData)
}

// NewFeedingStore creates the feeding store.
func NewFeedingStore(db *storage.DB) *FeedingStore {
	return New[model.FeedingRecord](db, "feeding", storage.KeyFeedingData)
}

// RecordEvent appends a plain timestamped event to the store.
func RecordEvent(s *EventStore) model.EventRecord {
	return s.Record(model.NewEventRecord)
}

// RecordFeeding appends a feeding with the given type and optional
// amount in milliliters (nil when amount logging is disabled).
func RecordFeeding(s *FeedingStore, feedType model.FeedType, amountMl *int) model.FeedingRecord {
	return s.Record(func(now time.Time) model.FeedingRecord {
		return model.NewFeedingRecord(now, feedType, amountMl)
	})
}

// TodayByType returns today's feeding entries of one feed type.
func TodayByType(s *FeedingStore, feedType model.FeedType) []model.FeedingRecord {
	return model.FilterByType(s.Today(), feedType)
}
