package entity

import "time"

// Location is the single live position of a participant. ParticipantID being
// the primary key is what makes the one-row-per-participant invariant hold:
// position reports upsert on it.
//
// Username and Group are snapshots copied from the participant at write
// time, not kept in sync afterwards.
type Location struct {
	ParticipantID string    `gorm:"primaryKey" json:"participant_id"`
	Username      string    `gorm:"not null" json:"username"`
	Latitude      float64   `gorm:"not null" json:"latitude"`
	Longitude     float64   `gorm:"not null" json:"longitude"`
	Timestamp     time.Time `gorm:"not null;index" json:"timestamp"`
	Group         *string   `json:"group,omitempty"`
}
