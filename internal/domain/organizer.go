package domain

import "time"

// Organizer is an authenticated account that can create and manage polls.
type Organizer struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
