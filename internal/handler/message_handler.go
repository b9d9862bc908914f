package handler

import (
	"net/http"
	"strconv"

	"huddle/internal/service"
)

type sendRequest struct {
	SenderID   string  `json:"sender_id"`
	Text       string  `json:"text"`
	ReceiverID *string `json:"receiver_id"`
	Group      *string `json:"group"`
}

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var request sendRequest
	if err := decodeJSON(r, &request); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	sender := requesterID(r, &request.SenderID)
	if sender == nil {
		http.Error(w, "sender_id is required", http.StatusBadRequest)
		return
	}

	message, err := h.messageService.Send(*sender, request.Text, request.ReceiverID, request.Group)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	requester := requesterID(r, queryParam(r, "requester_id"))
	group := queryParam(r, "group")

	messages, err := h.messageService.List(limit, requester, group)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) DeleteReceived(w http.ResponseWriter, r *http.Request) {
	id := requesterID(r, queryParam(r, "participant_id"))
	if id == nil {
		http.Error(w, "participant_id is required", http.StatusBadRequest)
		return
	}

	if err := h.messageService.DeleteReceived(*id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
