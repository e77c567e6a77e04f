package model

import "time"

// FeedType distinguishes breast feeds from formula feeds.
type FeedType string

const (
	FeedBreast  FeedType = "breast"
	FeedFormula FeedType = "formula"
)

// IsValidFeedType checks if a feed type is valid.
func IsValidFeedType(t FeedType) bool {
	return t == FeedBreast || t == FeedFormula
}

// FeedingRecord is one feed: when it happened, which kind, and
// optionally how much. AmountMl is nil when amount logging is
// disabled, not zero.
type FeedingRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Type      FeedType  `json:"type"`
	AmountMl  *int      `json:"amount,omitempty"`
}

// NewFeedingRecord creates a feeding record stamped at the given moment.
func NewFeedingRecord(at time.Time, feedType FeedType, amountMl *int) FeedingRecord {
	return FeedingRecord{Timestamp: at, Type: feedType, AmountMl: amountMl}
}

// When returns the moment the feed occurred.
func (f FeedingRecord) When() time.Time {
	return f.Timestamp
}

// TotalMl sums the logged amounts across entries. Entries without an
// amount contribute nothing.
func TotalMl(entries []FeedingRecord) int {
	total := 0
	for _, e := range entries {
		if e.AmountMl != nil {
			total += *e.AmountMl
		}
	}
	return total
}

// CountByType counts entries of the given feed type.
func CountByType(entries []FeedingRecord, t FeedType) int {
	n := 0
	for _, e := range entries {
		if e.Type == t {
			n++
		}
	}
	return n
}

// BreastFeedCount counts breast feeds.
func BreastFeedCount(entries []FeedingRecord) int {
	return CountByType(entries, FeedBreast)
}

// FormulaFeedCount counts formula feeds.
func FormulaFeedCount(entries []FeedingRecord) int {
	return CountByType(entries, FeedFormula)
}

// FilterByType returns the entries of the given feed type, in order.
func FilterByType(entries []FeedingRecord, t FeedType) []FeedingRecord {
	var out []FeedingRecord
	for _, e := range entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
