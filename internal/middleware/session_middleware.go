package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie session written at login and read back on
// every later call that omits an explicit participant id.
const SessionName = "sync-session"

type contextKey string

const participantKey contextKey = "participant_id"

// Session loads the cookie session and, when it carries a participant id,
// stashes it in the request context. Requests without a session pass
// through untouched: every operation is usable anonymously.
func Session(store *sessions.CookieStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, SessionName)
		if err == nil {
			if id, ok := session.Values["participant_id"].(string); ok && id != "" {
				r = r.WithContext(context.WithValue(r.Context(), participantKey, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ParticipantID reports the session participant id attached by Session.
func ParticipantID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(participantKey).(string)
	return id, ok
}
