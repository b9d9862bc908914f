// Package reaper evicts stale locations and the participants they leave
// orphaned. One call to Run is one pass; the cadence belongs to whoever
// schedules it.
package reaper

import (
	"fmt"
	"log/slog"
	"time"

	"huddle/internal/clock"
	"huddle/internal/entity"
	"huddle/internal/metrics"
	"huddle/internal/repository"
)

// EvictionThreshold is the location age past which a reaper pass deletes
// the row.
const EvictionThreshold = time.Minute

type Reaper struct {
	locations    repository.LocationRepository
	participants repository.ParticipantRepository
	clock        clock.Clock
}

func New(locations repository.LocationRepository, participants repository.ParticipantRepository, clk clock.Clock) *Reaper {
	return &Reaper{
		locations:    locations,
		participants: participants,
		clock:        clk,
	}
}

// Run performs one idempotent pass in two phases. Phase one snapshots the
// locations and deletes the stale rows, remembering their owners. Phase
// two re-snapshots and deletes every remembered owner that has no live
// location left. The re-snapshot is what keeps the pass safe against a
// concurrent position report: an upsert landing between the phases
// recreates the row with a current timestamp, and phase two sees it.
//
// Any deletion error is fatal for the pass and returned; phase two is
// never run against a partially deleted phase one.
func (r *Reaper) Run() error {
	threshold := r.clock.Now().Add(-EvictionThreshold)

	snapshot, err := r.locations.Snapshot()
	if err != nil {
		return fmt.Errorf("reaper: snapshot locations: %w", err)
	}

	candidates := staleOwners(snapshot, threshold)
	if len(candidates) == 0 {
		return nil
	}
	if err := r.locations.DeleteByOwners(candidates); err != nil {
		return fmt.Errorf("reaper: delete stale locations: %w", err)
	}

	remaining, err := r.locations.Snapshot()
	if err != nil {
		return fmt.Errorf("reaper: re-snapshot locations: %w", err)
	}

	doomed := orphans(candidates, remaining)
	if err := r.participants.Delete(doomed); err != nil {
		return fmt.Errorf("reaper: delete orphaned participants: %w", err)
	}

	metrics.EvictedLocations.Add(float64(len(candidates)))
	metrics.EvictedParticipants.Add(float64(len(doomed)))
	slog.Info("reaper pass complete",
		"evicted_locations", len(candidates),
		"evicted_participants", len(doomed),
	)
	return nil
}

// staleOwners returns the owners of every location older than threshold.
func staleOwners(snapshot []entity.Location, threshold time.Time) []string {
	var owners []string
	for _, loc := range snapshot {
		if loc.Timestamp.Before(threshold) {
			owners = append(owners, loc.ParticipantID)
		}
	}
	return owners
}

// orphans returns the candidates with no location left in the live set.
func orphans(candidates []string, live []entity.Location) []string {
	alive := make(map[string]struct{}, len(live))
	for _, loc := range live {
		alive[loc.ParticipantID] = struct{}{}
	}

	var doomed []string
	for _, id := range candidates {
		if _, ok := alive[id]; !ok {
			doomed = append(doomed, id)
		}
	}
	return doomed
}
