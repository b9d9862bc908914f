// Package visibility holds the pure decision functions that narrow
// locations and messages to what a given requester may see. Keeping them
// free of storage makes the multi-axis rules testable in isolation.
package visibility

import (
	"time"

	"huddle/internal/entity"
)

// GroupAll is the sentinel a requester passes to see broadcasts from every
// group. It is a filter token, not a group tag: a participant whose group
// is literally "all" still matches it only through the equality branch.
const GroupAll = "all"

// Tag coerces an optional group to the empty string for comparison.
// Absence of a group and the empty tag compare equal on the location/
// message side, while a nil requester group means "no filter" instead.
func Tag(group *string) string {
	if group == nil {
		return ""
	}
	return *group
}

// LocationVisible reports whether a location may be returned to the
// requester. The requester's own location is always included regardless of
// group match.
func LocationVisible(loc entity.Location, requesterID, requesterGroup *string) bool {
	if requesterID != nil && loc.ParticipantID == *requesterID {
		return true
	}
	if requesterGroup == nil {
		return true
	}
	return Tag(loc.Group) == *requesterGroup
}

// FilterLocations keeps the locations visible to the requester, preserving
// order.
func FilterLocations(locations []entity.Location, requesterID, requesterGroup *string) []entity.Location {
	visible := make([]entity.Location, 0, len(locations))
	for _, loc := range locations {
		if LocationVisible(loc, requesterID, requesterGroup) {
			visible = append(visible, loc)
		}
	}
	return visible
}

// MessageVisible decides whether a message reaches the requester:
//
//  1. direct messages to or from the requester always do, so a private
//     conversation survives a group switch;
//  2. broadcasts reach everyone when the requester has no group filter or
//     asked for GroupAll, otherwise only on a group match;
//  3. an addressed message that is not the requester's own conversation is
//     still shown to a matching group audience.
func MessageVisible(msg entity.Message, requesterID, requesterGroup *string) bool {
	if requesterID != nil {
		if msg.SenderID == *requesterID {
			return true
		}
		if msg.ReceiverID != nil && *msg.ReceiverID == *requesterID {
			return true
		}
	}

	if msg.ReceiverID == nil {
		if requesterGroup == nil || *requesterGroup == GroupAll {
			return true
		}
		return Tag(msg.Group) == *requesterGroup
	}

	if requesterGroup != nil {
		return Tag(msg.Group) == *requesterGroup
	}
	return false
}

// SessionCutoff is the timestamp below which messages are hidden from a
// requester: its session start (CreatedAt), falling back to LastSeen, and
// the zero time when neither is set. Callers with no resolvable requester
// use the zero time directly.
func SessionCutoff(p *entity.Participant) time.Time {
	if p == nil {
		return time.Time{}
	}
	if !p.CreatedAt.IsZero() {
		return p.CreatedAt
	}
	return p.LastSeen
}
