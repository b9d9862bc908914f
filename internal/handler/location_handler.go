package handler

import (
	"net/http"

	"huddle/internal/service"
)

type reportRequest struct {
	ParticipantID string  `json:"participant_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

type LocationHandler struct {
	locationService service.LocationService
}

func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

func (h *LocationHandler) Report(w http.ResponseWriter, r *http.Request) {
	var request reportRequest
	if err := decodeJSON(r, &request); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	id := requesterID(r, &request.ParticipantID)
	if id == nil {
		http.Error(w, "participant_id is required", http.StatusBadRequest)
		return
	}

	if err := h.locationService.Report(*id, request.Latitude, request.Longitude); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LocationHandler) ListFresh(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationService.ListFresh()
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) ListVisible(w http.ResponseWriter, r *http.Request) {
	requester := requesterID(r, queryParam(r, "requester_id"))
	group := queryParam(r, "group")

	locations, err := h.locationService.ListVisible(requester, group)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}
