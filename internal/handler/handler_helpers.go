package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"huddle/internal/middleware"
	"huddle/internal/repository"
)

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// serviceError maps domain errors onto HTTP statuses. Unknown identities
// are the only client-visible failure the core signals.
func serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrParticipantNotFound) {
		http.Error(w, "participant not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// queryParam returns the named query parameter as an optional string,
// distinguishing "absent" from "present but empty".
func queryParam(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	value := r.URL.Query().Get(key)
	return &value
}

// requesterID resolves the acting participant: an explicit id wins,
// otherwise the one stashed in the cookie session at login time.
func requesterID(r *http.Request, explicit *string) *string {
	if explicit != nil && *explicit != "" {
		return explicit
	}
	if id, ok := middleware.ParticipantID(r.Context()); ok {
		return &id
	}
	return nil
}
