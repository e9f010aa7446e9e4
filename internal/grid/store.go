package grid

import (
	"errors"
	"sort"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

// ErrNothingMarked rejects a submission attempt before any network call
// is made; the caller must prompt the user to paint something first.
var ErrNothingMarked = errors.New("no availability marked yet")

// Store is the current participant's in-memory availability, keyed by
// slot. Empty is the absence state and is never stored; local edit-mode
// state is authoritative until it is explicitly submitted.
type Store struct {
	slots    map[slot.Key]domain.AvailabilityStatus
	baseline map[slot.Key]domain.AvailabilityStatus // last seeded state, for Reset
}

func NewStore() *Store {
	return &Store{
		slots:    make(map[slot.Key]domain.AvailabilityStatus),
		baseline: make(map[slot.Key]domain.AvailabilityStatus),
	}
}

// Seed replaces the store content from the participant's previously
// submitted records, so a revisit starts from what they last sent. The
// seeded state is also kept as the Reset target.
func (s *Store) Seed(records []*domain.AvailabilityRecord) {
	s.slots = make(map[slot.Key]domain.AvailabilityStatus, len(records))
	for _, rec := range records {
		s.Set(slot.Key{Date: rec.Date, Time: rec.TimeSlot}, rec.Status)
	}
	s.baseline = make(map[slot.Key]domain.AvailabilityStatus, len(s.slots))
	for k, status := range s.slots {
		s.baseline[k] = status
	}
}

// Reset discards local edits and restores the last seeded state.
func (s *Store) Reset() {
	s.slots = make(map[slot.Key]domain.AvailabilityStatus, len(s.baseline))
	for k, status := range s.baseline {
		s.slots[k] = status
	}
}

// Set records one slot's status. Empty and busy both clear the entry:
// busy carries no more information than absence for counting, and
// keeping it out of the store keeps the submission payload to what the
// participant actually painted.
func (s *Store) Set(k slot.Key, status domain.AvailabilityStatus) {
	if status == domain.StatusEmpty || status == domain.StatusBusy {
		delete(s.slots, k)
		return
	}
	s.slots[k] = status
}

func (s *Store) Get(k slot.Key) domain.AvailabilityStatus {
	return s.slots[k]
}

func (s *Store) Len() int { return len(s.slots) }

func (s *Store) Clear() {
	s.slots = make(map[slot.Key]domain.AvailabilityStatus)
}

// MarkAllAvailable sets every given slot to available.
func (s *Store) MarkAllAvailable(keys []slot.Key) {
	for _, k := range keys {
		s.slots[k] = domain.StatusAvailable
	}
}

// MarkWeekends clears the store and marks Saturday and Sunday slots
// available.
func (s *Store) MarkWeekends(keys []slot.Key) {
	s.markWeekdaySubset(keys, func(d time.Weekday) bool {
		return d == time.Saturday || d == time.Sunday
	})
}

// MarkWeekdays clears the store and marks Monday through Friday slots
// available.
func (s *Store) MarkWeekdays(keys []slot.Key) {
	s.markWeekdaySubset(keys, func(d time.Weekday) bool {
		return d >= time.Monday && d <= time.Friday
	})
}

func (s *Store) markWeekdaySubset(keys []slot.Key, match func(time.Weekday) bool) {
	s.Clear()
	for _, k := range keys {
		wd, err := k.Weekday()
		if err != nil {
			continue
		}
		if match(wd) {
			s.slots[k] = domain.StatusAvailable
		}
	}
}

// Entry is one {date, timeSlot, status} triple of a submission payload.
type Entry struct {
	Date     string                    `json:"date"`
	TimeSlot string                    `json:"timeSlot"`
	Status   domain.AvailabilityStatus `json:"status"`
}

// Submission flattens the store into the wire payload, sorted by slot
// key for a stable body. An empty store is rejected here, before any
// request leaves the machine.
func (s *Store) Submission() ([]Entry, error) {
	if len(s.slots) == 0 {
		return nil, ErrNothingMarked
	}
	entries := make([]Entry, 0, len(s.slots))
	for k, status := range s.slots {
		entries = append(entries, Entry{Date: k.Date, TimeSlot: k.Time, Status: status})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].TimeSlot < entries[j].TimeSlot
	})
	return entries, nil
}
