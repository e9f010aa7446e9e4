package slot

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Key identifies one (date, time-of-day) cell of an availability grid.
// Its string form "<YYYY-MM-DD>_<HH:MM>" is used verbatim as the map key
// on the wire, in storage and in the heatmap, so it must stay stable.
type Key struct {
	Date string `json:"date"`
	Time string `json:"timeOfDay"`
}

func New(date, timeOfDay string) (Key, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Key{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return Key{}, fmt.Errorf("invalid time %q: expected HH:MM", timeOfDay)
	}
	return Key{Date: date, Time: timeOfDay}, nil
}

func (k Key) String() string {
	return k.Date + "_" + k.Time
}

func Parse(s string) (Key, error) {
	date, timeOfDay, found := strings.Cut(s, "_")
	if !found {
		return Key{}, fmt.Errorf("invalid slot key %q: missing separator", s)
	}
	return New(date, timeOfDay)
}

func (k Key) IsZero() bool {
	return k.Date == "" && k.Time == ""
}

// Weekday returns the calendar weekday of the key's date.
func (k Key) Weekday() (time.Weekday, error) {
	t, err := time.Parse(DateLayout, k.Date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// StartEnd returns the concrete start and end instants of the slot given
// the session duration. Used by the calendar export.
func (k Key) StartEnd(duration time.Duration) (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout+" "+TimeLayout, k.Date+" "+k.Time)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(duration), nil
}
