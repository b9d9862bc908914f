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

// PresenceWindow is how recently a participant must have been seen to
// count as online.
const PresenceWindow = 5 * time.Minute

type PresenceService interface {
	Login(username string, group *string) (*entity.Participant, error)
	ListActive() ([]entity.Participant, error)
}

type presenceService struct {
	participants repository.ParticipantRepository
	clock        clock.Clock
}

func NewPresenceService(participants repository.ParticipantRepository, clk clock.Clock) PresenceService {
	return &presenceService{
		participants: participants,
		clock:        clk,
	}
}

func (s *presenceService) Login(username string, group *string) (*entity.Participant, error) {
	// An empty group tag counts as "not supplied": it must not overwrite
	// an existing tag on re-login.
	if group != nil && *group == "" {
		group = nil
	}

	participant, err := s.participants.Login(username, group, s.clock.Now())
	if err != nil {
		slog.Error("login failed", "username", username, "error", err)
		return nil, fmt.Errorf("login %q: %w", username, err)
	}

	metrics.Logins.Inc()
	slog.Info("participant logged in",
		"participant_id", participant.ID,
		"username", participant.Username,
		"group", visibility.Tag(participant.Group),
	)
	return participant, nil
}

func (s *presenceService) ListActive() ([]entity.Participant, error) {
	threshold := s.clock.Now().Add(-PresenceWindow)
	participants, err := s.participants.ListActiveSince(threshold)
	if err != nil {
		return nil, fmt.Errorf("list active participants: %w", err)
	}
	return participants, nil
}
