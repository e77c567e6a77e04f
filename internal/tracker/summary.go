package tracker

import "time"

// milestoneIndex is the zero-based index of the celebratory kick
// milestone. The daily goal is user-configurable; the "tenth kick"
// marker is not.
const milestoneIndex = 9

// Summary describes one day's records: first, last, and how many.
type Summary struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
	Count int        `json:"count"`
}

// Summarize computes a day summary. Pure; operates on whatever slice
// it is given, not on store state.
func Summarize[T Record](records []T) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	start := records[0].When()
	end := records[len(records)-1].When()
	return Summary{
		Start: &start,
		End:   &end,
		Count: len(records),
	}
}

// KickSummary is a Summary plus the tenth-kick milestone moment.
type KickSummary struct {
	Summary
	Tenth *time.Time `json:"tenth,omitempty"`
}

// SummarizeKicks computes a kick day summary. Tenth is nil when fewer
// than ten kicks were recorded.
func SummarizeKicks[T Record](records []T) KickSummary {
	sum := KickSummary{Summary: Summarize(records)}
	if len(records) > milestoneIndex {
		tenth := records[milestoneIndex].When()
		sum.Tenth = &tenth
	}
	return sum
}
