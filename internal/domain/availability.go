package domain

// AvailabilityStatus is the per-slot paint state of a single participant.
// StatusEmpty is the absence state and is never persisted. StatusBusy is
// accepted on the wire for compatibility with older submissions but is
// treated as absence everywhere that counts.
type AvailabilityStatus string

const (
	StatusEmpty     AvailabilityStatus = ""
	StatusAvailable AvailabilityStatus = "available"
	StatusTentative AvailabilityStatus = "tentative"
	StatusBusy      AvailabilityStatus = "busy"
)

// Counts reports whether the status contributes a vote to overlap
// counting. Tentative counts exactly like available; whether it should
// weigh less is an open question, so the decision lives here and nowhere
// else.
func (s AvailabilityStatus) Counts() bool {
	return s == StatusAvailable || s == StatusTentative
}

func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusTentative, StatusBusy:
		return true
	}
	return false
}

// AvailabilityRecord is one non-empty slot of one participant's
// submission, the unit exchanged with storage.
type AvailabilityRecord struct {
	ID            int64              `json:"-"`
	PollID        string             `json:"-"`
	ParticipantID string             `json:"participantID"`
	Date          string             `json:"date"`
	TimeSlot      string             `json:"timeSlot"`
	Status        AvailabilityStatus `json:"status"`
}
