package entity

import "time"

// Participant is a logged-in client. Username is the login key but its
// uniqueness is advisory only: logging in with an existing username patches
// the existing row instead of creating a second one.
//
// CreatedAt is reset on every login and doubles as the session start used
// as the message-visibility cutoff.
type Participant struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null;index" json:"username"`
	LastSeen  time.Time `gorm:"not null;index" json:"last_seen"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	Group     *string   `json:"group,omitempty"`
}
