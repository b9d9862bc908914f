package repository

import (
	"errors"
	"time"

	"huddle/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrParticipantNotFound is returned when an operation references an
// identity that is absent from the participants table. The surrounding
// transaction rolls back as a whole, so the failed operation leaves no
// partial writes.
var ErrParticipantNotFound = errors.New("participant not found")

type ParticipantRepository interface {
	// Login upserts a participant by username: an existing row gets
	// LastSeen and CreatedAt patched to now (and Group overwritten when a
	// non-nil one is supplied), otherwise a fresh row is created. Either
	// way the resulting participant is returned.
	Login(username string, group *string, now time.Time) (*entity.Participant, error)

	GetByID(id string) (*entity.Participant, error)

	// ListActiveSince returns participants whose LastSeen is at or after
	// the given threshold.
	ListActiveSince(threshold time.Time) ([]entity.Participant, error)

	Delete(ids []string) error
}

type SQLiteParticipantRepository struct {
	db *gorm.DB
}

func NewSQLiteParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &SQLiteParticipantRepository{db}
}

func (repo *SQLiteParticipantRepository) Login(username string, group *string, now time.Time) (*entity.Participant, error) {
	var participant entity.Participant

	err := repo.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("username = ?", username).First(&participant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			participant = entity.Participant{
				ID:        uuid.New().String(),
				Username:  username,
				LastSeen:  now,
				CreatedAt: now,
				Group:     group,
			}
			return tx.Create(&participant).Error
		}
		if err != nil {
			return err
		}

		// Re-login starts a fresh session: CreatedAt moves to now, which
		// also resets this participant's message-visibility cutoff.
		updates := map[string]any{
			"last_seen":  now,
			"created_at": now,
		}
		if group != nil {
			updates["group"] = *group
		}
		if err := tx.Model(&entity.Participant{}).Where("id = ?", participant.ID).Updates(updates).Error; err != nil {
			return err
		}

		participant.LastSeen = now
		participant.CreatedAt = now
		if group != nil {
			participant.Group = group
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &participant, nil
}

func (repo *SQLiteParticipantRepository) GetByID(id string) (*entity.Participant, error) {
	var participant entity.Participant
	err := repo.db.Where("id = ?", id).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (repo *SQLiteParticipantRepository) ListActiveSince(threshold time.Time) ([]entity.Participant, error) {
	var participants []entity.Participant
	err := repo.db.Where("last_seen >= ?", threshold).Find(&participants).Error
	return participants, err
}

func (repo *SQLiteParticipantRepository) Delete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return repo.db.Where("id IN ?", ids).Delete(&entity.Participant{}).Error
}
