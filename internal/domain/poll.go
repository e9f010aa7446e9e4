package domain

import (
	"time"

	"github.com/digennarot/dndScheduler/internal/slot"
)

type PollStatus string

const (
	PollStatusActive    PollStatus = "active"
	PollStatusFinalized PollStatus = "finalized"
)

// Poll is one scheduling poll: an ordered list of candidate dates and,
// per date, the time-of-day slots participants may vote on. Editing
// replaces the whole date/time configuration, never patches it.
type Poll struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	OrganizerID int64      `json:"organizerID"`
	Duration    int32      `json:"duration"` // session length in minutes
	Dates       []string   `json:"dates"`
	TimeSlots   map[string][]string `json:"timeSlots"` // date -> HH:MM slots
	Status      PollStatus `json:"status"`
	FinalSlot   *string    `json:"finalSlot"` // serialized slot key once finalized
	CreatedAt   time.Time  `json:"createdAt"`
	Version     int32      `json:"-"`
}

// SlotKeys lists every configured (date, time) pair in date-major,
// time-minor order. This order is what makes ranking ties deterministic.
func (p *Poll) SlotKeys() []slot.Key {
	keys := make([]slot.Key, 0, len(p.Dates)*4)
	for _, date := range p.Dates {
		for _, t := range p.TimeSlots[date] {
			keys = append(keys, slot.Key{Date: date, Time: t})
		}
	}
	return keys
}

func (p *Poll) HasSlot(k slot.Key) bool {
	for _, t := range p.TimeSlots[k.Date] {
		if t == k.Time {
			return true
		}
	}
	return false
}

func (p *Poll) SessionDuration() time.Duration {
	return time.Duration(p.Duration) * time.Minute
}
