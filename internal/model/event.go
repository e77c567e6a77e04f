package model

import "time"

// EventRecord is a single timestamped occurrence: one kick, one wet
// diaper, one dirty diaper. It carries nothing but the moment it
// happened.
type EventRecord struct {
	Timestamp time.Time `json:"timestamp"`
}

// NewEventRecord creates a record stamped at the given moment.
func NewEventRecord(at time.Time) EventRecord {
	return EventRecord{Timestamp: at}
}

// When returns the moment the event occurred.
func (e EventRecord) When() time.Time {
	return e.Timestamp
}
