// Package planner holds the poll-creation side logic: assembling the
// (date -> time slots) configuration a grid is later built from.
package planner

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/digennarot/dndScheduler/internal/slot"
)

var (
	ErrNoDates        = errors.New("select at least one date")
	ErrNoTimeSelected = errors.New("select at least one time slot for at least one date")
	ErrFirstDateEmpty = errors.New("select at least one time slot for the first date before copying to all dates")
)

// Builder maintains a per-day time preference mapping while an organizer
// walks through poll creation. Each date's set is independent of every
// other date's.
type Builder struct {
	dates []string
	times map[string][]string // per date, kept sorted
}

func NewBuilder(dates []string) (*Builder, error) {
	b := &Builder{times: make(map[string][]string)}
	if err := b.SetDates(dates); err != nil {
		return nil, err
	}
	return b, nil
}

// SetDates replaces the selected dates. Newly added dates start with an
// empty time set; preferences of dropped dates are removed so no
// orphaned entries survive a reselection.
func (b *Builder) SetDates(dates []string) error {
	for _, d := range dates {
		if _, err := time.Parse(slot.DateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", d)
		}
	}

	b.dates = slices.Clone(dates)
	for _, d := range dates {
		if _, ok := b.times[d]; !ok {
			b.times[d] = []string{}
		}
	}
	for d := range b.times {
		if !slices.Contains(dates, d) {
			delete(b.times, d)
		}
	}
	return nil
}

// Toggle adds the (date, time) pair if absent and removes it if present.
// No other date is affected.
func (b *Builder) Toggle(date, timeOfDay string) error {
	if !slices.Contains(b.dates, date) {
		return fmt.Errorf("date %s is not part of the selection", date)
	}
	if _, err := time.Parse(slot.TimeLayout, timeOfDay); err != nil {
		return fmt.Errorf("invalid time %q: expected HH:MM", timeOfDay)
	}

	cur := b.times[date]
	if i := slices.Index(cur, timeOfDay); i >= 0 {
		b.times[date] = slices.Delete(cur, i, i+1)
		return nil
	}
	cur = append(cur, timeOfDay)
	slices.Sort(cur)
	b.times[date] = cur
	return nil
}

// CopyFirstToAll replaces every other date's time set with a copy of the
// first date's set. The first date must already have at least one time
// selected; otherwise the operation is rejected and nothing is mutated.
func (b *Builder) CopyFirstToAll() error {
	if len(b.dates) == 0 {
		return ErrNoDates
	}
	first := b.times[b.dates[0]]
	if len(first) == 0 {
		return ErrFirstDateEmpty
	}
	for _, d := range b.dates[1:] {
		b.times[d] = slices.Clone(first)
	}
	return nil
}

// Validate reports whether the configuration may proceed past the time
// selection step: at least one date must have at least one time slot.
func (b *Builder) Validate() error {
	if len(b.dates) == 0 {
		return ErrNoDates
	}
	for _, d := range b.dates {
		if len(b.times[d]) > 0 {
			return nil
		}
	}
	return ErrNoTimeSelected
}

func (b *Builder) Dates() []string {
	return slices.Clone(b.dates)
}

// Times returns the selected time slots for one date, sorted.
func (b *Builder) Times(date string) []string {
	return slices.Clone(b.times[date])
}

// TimeSlots returns the full date -> time slots mapping, with dates that
// ended up with zero selected times dropped: a date nobody can vote on
// has no business reaching the grid.
func (b *Builder) TimeSlots() (dates []string, times map[string][]string) {
	times = make(map[string][]string, len(b.dates))
	for _, d := range b.dates {
		if len(b.times[d]) == 0 {
			continue
		}
		dates = append(dates, d)
		times[d] = slices.Clone(b.times[d])
	}
	return dates, times
}
