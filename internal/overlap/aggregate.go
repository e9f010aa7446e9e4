// Package overlap folds many participants' per-slot statuses into
// per-slot attendance counts and ranks the best candidate slots. All
// functions are pure; callers pass the full record set every time and
// nothing is cached.
package overlap

import (
	"sort"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

// AggregatedSlot is the derived attendance of one grid cell.
type AggregatedSlot struct {
	Slot   slot.Key `json:"slot"`
	Count  int      `json:"count"`
	Voters []string `json:"voters"`
}

// Aggregate counts, for every configured slot, how many participants
// marked it available or tentative, and collects their display names.
// Every key in keys gets a bucket even when nobody voted for it. Records
// referencing slots outside the configuration (e.g. left over from an
// edited poll) get a lazily created bucket instead of being dropped.
//
// The result is independent of record order: counts are commutative and
// voter lists are sorted before returning.
func Aggregate(records []*domain.AvailabilityRecord, keys []slot.Key, names map[string]string) map[slot.Key]*AggregatedSlot {
	agg := make(map[slot.Key]*AggregatedSlot, len(keys))
	for _, k := range keys {
		agg[k] = &AggregatedSlot{Slot: k, Voters: []string{}}
	}

	for _, rec := range records {
		if !rec.Status.Counts() {
			continue
		}
		k := slot.Key{Date: rec.Date, Time: rec.TimeSlot}
		bucket, ok := agg[k]
		if !ok {
			bucket = &AggregatedSlot{Slot: k, Voters: []string{}}
			agg[k] = bucket
		}

		name, ok := names[rec.ParticipantID]
		if !ok {
			name = "Unknown"
		}
		bucket.Count++
		bucket.Voters = append(bucket.Voters, name)
	}

	for _, bucket := range agg {
		sort.Strings(bucket.Voters)
	}
	return agg
}

// Slots flattens an aggregation into a deterministic slice: configured
// keys first, in the order given, then any drifted keys sorted by their
// serialized form.
func Slots(agg map[slot.Key]*AggregatedSlot, order []slot.Key) []*AggregatedSlot {
	out := make([]*AggregatedSlot, 0, len(agg))
	seen := make(map[slot.Key]bool, len(order))

	for _, k := range order {
		if bucket, ok := agg[k]; ok {
			out = append(out, bucket)
			seen[k] = true
		}
	}

	var extra []*AggregatedSlot
	for k, bucket := range agg {
		if !seen[k] {
			extra = append(extra, bucket)
		}
	}
	sort.Slice(extra, func(i, j int) bool {
		return extra[i].Slot.String() < extra[j].Slot.String()
	})
	return append(out, extra...)
}
