package service

import (
	"fmt"
	"log/slog"
	"time"

	"huddle/internal/clock"
	"huddle/internal/entity"
	"huddle/internal/metrics"
	"huddle/internal/repository"
	"huddle/internal/visibility"
)

// FreshnessWindow is the read-side staleness threshold: older locations
// are held back from queries even before the reaper removes them.
const FreshnessWindow = 2 * time.Minute

type LocationService interface {
	Report(participantID string, latitude, longitude float64) error
	ListFresh() ([]entity.Location, error)
	ListVisible(requesterID, requesterGroup *string) ([]entity.Location, error)
}

type locationService struct {
	locations repository.LocationRepository
	clock     clock.Clock
}

func NewLocationService(locations repository.LocationRepository, clk clock.Clock) LocationService {
	return &locationService{
		locations: locations,
		clock:     clk,
	}
}

func (s *locationService) Report(participantID string, latitude, longitude float64) error {
	if err := s.locations.Report(participantID, latitude, longitude, s.clock.Now()); err != nil {
		slog.Error("position report rejected", "participant_id", participantID, "error", err)
		return fmt.Errorf("report location for %s: %w", participantID, err)
	}

	metrics.LocationReports.Inc()
	slog.Debug("position reported",
		"participant_id", participantID,
		"latitude", latitude,
		"longitude", longitude,
	)
	return nil
}

func (s *locationService) ListFresh() ([]entity.Location, error) {
	threshold := s.clock.Now().Add(-FreshnessWindow)
	locations, err := s.locations.ListSince(threshold)
	if err != nil {
		return nil, fmt.Errorf("list fresh locations: %w", err)
	}
	return locations, nil
}

func (s *locationService) ListVisible(requesterID, requesterGroup *string) ([]entity.Location, error) {
	fresh, err := s.ListFresh()
	if err != nil {
		return nil, err
	}
	return visibility.FilterLocations(fresh, requesterID, requesterGroup), nil
}
