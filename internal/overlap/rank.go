package overlap

import (
	"math"
	"sort"
)

const (
	// BestTimesTopK caps the "best times" list shown on the poll page.
	BestTimesTopK = 3
	// FinalizeTopK caps the candidate list offered by the finalize picker.
	FinalizeTopK = 5
)

// RankedSlot is one recommended candidate slot.
type RankedSlot struct {
	Date          string `json:"date"`
	TimeOfDay     string `json:"timeOfDay"`
	AttendeeCount int    `json:"attendeeCount"`
	Percentage    int    `json:"percentage"`
}

// Rank sorts aggregated slots by attendance descending and returns the
// top k. Ties keep their input order, so the same input always produces
// the same list. The percentage is attendance over the total participant
// count, rounded; zero participants yields 0 rather than a division by
// zero. When nobody has voted for anything the result is empty instead
// of a list of zero-count entries.
func Rank(slots []*AggregatedSlot, totalParticipants, topK int) []RankedSlot {
	if topK <= 0 || len(slots) == 0 {
		return nil
	}

	ordered := make([]*AggregatedSlot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})

	if ordered[0].Count == 0 {
		return nil
	}
	if topK > len(ordered) {
		topK = len(ordered)
	}

	ranked := make([]RankedSlot, 0, topK)
	for _, s := range ordered[:topK] {
		pct := 0
		if totalParticipants > 0 {
			pct = int(math.Round(float64(s.Count) / float64(totalParticipants) * 100))
		}
		ranked = append(ranked, RankedSlot{
			Date:          s.Slot.Date,
			TimeOfDay:     s.Slot.Time,
			AttendeeCount: s.Count,
			Percentage:    pct,
		})
	}
	return ranked
}
