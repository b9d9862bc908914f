package service

import (
	"path/filepath"
	"testing"
	"time"

	"huddle/internal/clock"
	"huddle/internal/entity"
	"huddle/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	clock    *clock.Manual
	presence PresenceService
	location LocationService
	message  MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entity.Participant{}, &entity.Location{}, &entity.Message{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	clk := clock.NewManual(baseTime)
	participants := repository.NewSQLiteParticipantRepository(db)
	locations := repository.NewSQLiteLocationRepository(db)
	messages := repository.NewSQLiteMessageRepository(db)

	return &fixture{
		clock:    clk,
		presence: NewPresenceService(participants, clk),
		location: NewLocationService(locations, clk),
		message:  NewMessageService(messages, participants, clk),
	}
}

func strptr(s string) *string { return &s }

func (f *fixture) login(t *testing.T, username string, group *string) *entity.Participant {
	t.Helper()
	participant, err := f.presence.Login(username, group)
	if err != nil {
		t.Fatalf("login %q failed: %v", username, err)
	}
	return participant
}
