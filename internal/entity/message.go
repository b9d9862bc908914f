package entity

import "time"

// Message is immutable once written. A nil ReceiverID means broadcast.
// Group is the audience tag stored at send time: the explicit argument if
// one was given, otherwise the sender's group at that moment.
type Message struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SenderID   string    `gorm:"index" json:"sender_id"`
	Username   string    `gorm:"not null" json:"username"`
	Text       string    `gorm:"not null" json:"text"`
	Timestamp  time.Time `gorm:"not null;index;index:idx_messages_receiver_timestamp,priority:2" json:"timestamp"`
	ReceiverID *string   `gorm:"index:idx_messages_receiver_timestamp,priority:1" json:"receiver_id,omitempty"`
	Group      *string   `json:"group,omitempty"`
}
