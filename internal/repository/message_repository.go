package repository

import (
	"errors"
	"time"

	"huddle/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository interface {
	// Create appends an immutable message in a single transaction,
	// advancing the sender's LastSeen on the way. The stored group is the
	// explicit argument when non-nil, otherwise the sender's current
	// group. Returns ErrParticipantNotFound when the sender does not
	// resolve.
	Create(senderID, text string, receiverID, group *string, now time.Time) (*entity.Message, error)

	// Recent returns up to limit messages, newest first.
	Recent(limit int) ([]entity.Message, error)

	// DeleteByReceiver removes every message addressed to the given
	// participant. Deleting zero rows is not an error.
	DeleteByReceiver(participantID string) error
}

type SQLiteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) Create(senderID, text string, receiverID, group *string, now time.Time) (*entity.Message, error) {
	var message entity.Message

	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var sender entity.Participant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", senderID).First(&sender).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&sender).Update("last_seen", now).Error; err != nil {
			return err
		}

		stored := group
		if stored == nil {
			stored = sender.Group
		}

		message = entity.Message{
			ID:         uuid.New().String(),
			SenderID:   senderID,
			Username:   sender.Username,
			Text:       text,
			Timestamp:  now,
			ReceiverID: receiverID,
			Group:      stored,
		}
		return tx.Create(&message).Error
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

func (repo *SQLiteMessageRepository) Recent(limit int) ([]entity.Message, error) {
	var messages []entity.Message
	err := repo.db.Order("timestamp DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

func (repo *SQLiteMessageRepository) DeleteByReceiver(participantID string) error {
	return repo.db.Where("receiver_id = ?", participantID).Delete(&entity.Message{}).Error
}
