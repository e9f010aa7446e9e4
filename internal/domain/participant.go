package domain

import "time"

// Participant is one invitee of a poll. AccessToken is the bearer
// credential minted at join time; a participant may only submit
// availability under their own id with that token.
type Participant struct {
	ID          string    `json:"id"`
	PollID      string    `json:"pollID"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	UserID      *int64    `json:"userID"` // optional link to an organizer account
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
