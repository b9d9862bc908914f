package handler

import (
	"net/http"
	"time"

	"huddle/internal/middleware"
	"huddle/internal/service"

	"github.com/gorilla/sessions"
)

type loginRequest struct {
	Username string  `json:"username"`
	Group    *string `json:"group"`
}

type loginResponse struct {
	ParticipantID string  `json:"participant_id"`
	Username      string  `json:"username"`
	Group         *string `json:"group,omitempty"`
}

type activeParticipant struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
}

type ParticipantHandler struct {
	presenceService service.PresenceService
	cookieStore     *sessions.CookieStore
}

func NewParticipantHandler(presenceService service.PresenceService, cookieStore *sessions.CookieStore) *ParticipantHandler {
	return &ParticipantHandler{
		presenceService: presenceService,
		cookieStore:     cookieStore,
	}
}

func (h *ParticipantHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := decodeJSON(r, &request); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if request.Username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	participant, err := h.presenceService.Login(request.Username, request.Group)
	if err != nil {
		serviceError(w, err)
		return
	}

	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Values["participant_id"] = participant.ID
	session.Values["username"] = participant.Username
	sessions.Save(r, w)

	writeJSON(w, http.StatusOK, loginResponse{
		ParticipantID: participant.ID,
		Username:      participant.Username,
		Group:         participant.Group,
	})
}

func (h *ParticipantHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	participants, err := h.presenceService.ListActive()
	if err != nil {
		serviceError(w, err)
		return
	}

	active := make([]activeParticipant, len(participants))
	for i, p := range participants {
		active[i] = activeParticipant{
			ID:       p.ID,
			Username: p.Username,
			LastSeen: p.LastSeen,
		}
	}
	writeJSON(w, http.StatusOK, active)
}
