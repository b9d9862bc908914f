package reaper

import (
	"errors"
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

func setup(t *testing.T) (*gorm.DB, repository.ParticipantRepository, repository.LocationRepository, *clock.Manual, *Reaper) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entity.Participant{}, &entity.Location{}, &entity.Message{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	participants := repository.NewSQLiteParticipantRepository(db)
	locations := repository.NewSQLiteLocationRepository(db)
	clk := clock.NewManual(baseTime)
	return db, participants, locations, clk, New(locations, participants, clk)
}

func TestRunEvictsStaleLocationAndOwner(t *testing.T) {
	db, participants, locations, clk, r := setup(t)

	ana, err := participants.Login("ana", nil, clk.Now())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := locations.Report(ana.ID, 48.85, 2.35, clk.Now()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	clk.Advance(2 * time.Minute)
	if err := r.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var count int64
	db.Model(&entity.Location{}).Count(&count)
	if count != 0 {
		t.Errorf("location rows GOT[%d], EXPECTED[0]", count)
	}

	_, err = participants.GetByID(ana.ID)
	if !errors.Is(err, repository.ErrParticipantNotFound) {
		t.Errorf("expected the orphaned participant to be deleted, got %v", err)
	}
}

func TestRunSparesFreshLocations(t *testing.T) {
	db, participants, locations, clk, r := setup(t)

	ana, err := participants.Login("ana", nil, clk.Now())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := locations.Report(ana.ID, 48.85, 2.35, clk.Now()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	clk.Advance(30 * time.Second)
	if err := r.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var count int64
	db.Model(&entity.Location{}).Count(&count)
	if count != 1 {
		t.Errorf("location rows GOT[%d], EXPECTED[1]", count)
	}
	if _, err := participants.GetByID(ana.ID); err != nil {
		t.Errorf("participant with a fresh location must survive: %v", err)
	}
}

func TestRunNeverReapsParticipantWithoutLocation(t *testing.T) {
	_, participants, _, clk, r := setup(t)

	ana, err := participants.Login("ana", nil, clk.Now())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	clk.Advance(10 * time.Minute)
	if err := r.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Deletion is conditioned on leaving a stale location behind; a
	// participant that never reported one is left alone.
	if _, err := participants.GetByID(ana.ID); err != nil {
		t.Errorf("locationless participant must not be reaped: %v", err)
	}
}

func TestStaleOwners(t *testing.T) {
	threshold := baseTime.Add(-time.Minute)
	snapshot := []entity.Location{
		{ParticipantID: "old", Timestamp: baseTime.Add(-2 * time.Minute)},
		{ParticipantID: "edge", Timestamp: threshold},
		{ParticipantID: "fresh", Timestamp: baseTime},
	}

	owners := staleOwners(snapshot, threshold)
	if len(owners) != 1 || owners[0] != "old" {
		t.Errorf("stale owners GOT[%v], EXPECTED[[old]]", owners)
	}
}

func TestOrphansSparesReRegisteredOwner(t *testing.T) {
	// "survivor" re-reported between the phases: its recreated row shows
	// up in the live snapshot, so only "gone" is orphaned.
	candidates := []string{"gone", "survivor"}
	live := []entity.Location{
		{ParticipantID: "survivor", Timestamp: baseTime},
		{ParticipantID: "bystander", Timestamp: baseTime},
	}

	doomed := orphans(candidates, live)
	if len(doomed) != 1 || doomed[0] != "gone" {
		t.Errorf("orphans GOT[%v], EXPECTED[[gone]]", doomed)
	}
}
