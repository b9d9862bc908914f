package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"huddle/internal/clock"
	"huddle/internal/entity"
	"huddle/internal/metrics"
	"huddle/internal/repository"
	"huddle/internal/visibility"
)

// DefaultMessageLimit caps List when the caller does not ask for a limit.
const DefaultMessageLimit = 50

// Listing over-fetches by this factor to compensate for messages dropped
// by the cutoff and audience filters.
const overfetchFactor = 2

type MessageService interface {
	Send(senderID, text string, receiverID, group *string) (*entity.Message, error)
	List(limit int, requesterID, requesterGroup *string) ([]entity.Message, error)
	DeleteReceived(participantID string) error
}

type messageService struct {
	messages     repository.MessageRepository
	participants repository.ParticipantRepository
	clock        clock.Clock
}

func NewMessageService(messages repository.MessageRepository, participants repository.ParticipantRepository, clk clock.Clock) MessageService {
	return &messageService{
		messages:     messages,
		participants: participants,
		clock:        clk,
	}
}

func (s *messageService) Send(senderID, text string, receiverID, group *string) (*entity.Message, error) {
	message, err := s.messages.Create(senderID, text, receiverID, group, s.clock.Now())
	if err != nil {
		slog.Error("message rejected", "sender_id", senderID, "error", err)
		return nil, fmt.Errorf("send message from %s: %w", senderID, err)
	}

	metrics.MessagesSent.Inc()
	slog.Debug("message sent",
		"message_id", message.ID,
		"sender_id", message.SenderID,
		"broadcast", message.ReceiverID == nil,
		"group", visibility.Tag(message.Group),
	)
	return message, nil
}

func (s *messageService) List(limit int, requesterID, requesterGroup *string) ([]entity.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}

	recent, err := s.messages.Recent(overfetchFactor * limit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent messages: %w", err)
	}

	cutoff, err := s.cutoffFor(requesterID)
	if err != nil {
		return nil, err
	}

	// recent is newest-first; keep the most recent eligible ones up to
	// the limit, then hand them back oldest-to-newest.
	kept := make([]entity.Message, 0, limit)
	for _, msg := range recent {
		if msg.Timestamp.Before(cutoff) {
			continue
		}
		if !visibility.MessageVisible(msg, requesterID, requesterGroup) {
			continue
		}
		kept = append(kept, msg)
		if len(kept) == limit {
			break
		}
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept, nil
}

// cutoffFor resolves the requester's session cutoff. A requester that does
// not resolve gets the zero cutoff rather than an error: listing is a pure
// read and stale ids must not break it.
func (s *messageService) cutoffFor(requesterID *string) (time.Time, error) {
	if requesterID == nil {
		return time.Time{}, nil
	}
	requester, err := s.participants.GetByID(*requesterID)
	if errors.Is(err, repository.ErrParticipantNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve requester %s: %w", *requesterID, err)
	}
	return visibility.SessionCutoff(requester), nil
}

func (s *messageService) DeleteReceived(participantID string) error {
	if err := s.messages.DeleteByReceiver(participantID); err != nil {
		return fmt.Errorf("delete received messages for %s: %w", participantID, err)
	}
	slog.Info("received messages cleared", "participant_id", participantID)
	return nil
}
