package repository

import (
	"errors"
	"time"

	"huddle/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	// Report records a position for the given participant in a single
	// transaction: the participant's LastSeen advances to now and its one
	// location row is upserted (insert stamped with the participant's
	// current username and group, or patch of latitude, longitude,
	// timestamp and group). Returns ErrParticipantNotFound when the
	// identity does not resolve.
	Report(participantID string, latitude, longitude float64, now time.Time) error

	// ListSince returns locations whose Timestamp is at or after the
	// given threshold.
	ListSince(threshold time.Time) ([]entity.Location, error)

	// Snapshot returns every location row.
	Snapshot() ([]entity.Location, error)

	DeleteByOwners(participantIDs []string) error
}

type SQLiteLocationRepository struct {
	db *gorm.DB
}

func NewSQLiteLocationRepository(db *gorm.DB) LocationRepository {
	return &SQLiteLocationRepository{db}
}

func (repo *SQLiteLocationRepository) Report(participantID string, latitude, longitude float64, now time.Time) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var participant entity.Participant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", participantID).First(&participant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&participant).Update("last_seen", now).Error; err != nil {
			return err
		}

		location := entity.Location{
			ParticipantID: participantID,
			Username:      participant.Username,
			Latitude:      latitude,
			Longitude:     longitude,
			Timestamp:     now,
			Group:         participant.Group,
		}
		// The upsert on the primary key is the single atomic
		// check-then-write unit: two concurrent reports for the same
		// identity can never leave two rows behind.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "timestamp", "group"}),
		}).Create(&location).Error
	})
}

func (repo *SQLiteLocationRepository) ListSince(threshold time.Time) ([]entity.Location, error) {
	var locations []entity.Location
	err := repo.db.Where("timestamp >= ?", threshold).Find(&locations).Error
	return locations, err
}

func (repo *SQLiteLocationRepository) Snapshot() ([]entity.Location, error) {
	var locations []entity.Location
	err := repo.db.Find(&locations).Error
	return locations, err
}

func (repo *SQLiteLocationRepository) DeleteByOwners(participantIDs []string) error {
	if len(participantIDs) == 0 {
		return nil
	}
	return repo.db.Where("participant_id IN ?", participantIDs).Delete(&entity.Location{}).Error
}
