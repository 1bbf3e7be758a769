package web

import (
	"errors"
	"net/http"
	"strings"

	"hipat/internal/application/orchestrators"
	"hipat/internal/application/projections"
	"hipat/internal/domain/session"
)

// handleSessions handles GET (upcoming week, grouped by day) and POST (book)
// for /api/sessions.
func handleSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		groups, err := projections.QueryGetUpcomingSessions(ctx, mentorID(r), projections.GetUpcomingSessionsDeps{
			SessionStore: stores.SessionStore,
		}, timeNow())
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, groups)
		return
	}

	// POST: book a session from the dashboard
	input := orchestrators.BookSessionInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	input.MentorID = mentorID(r)

	s, err := orchestrators.ExecuteBookSession(ctx, input, orchestrators.BookSessionDeps{
		SessionStore: stores.SessionStore,
		ClientStore:  stores.ClientStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, s)
}

// handleSessionTransition handles POST /api/sessions/{id}/cancel and
// POST /api/sessions/{id}/complete.
func handleSessionTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deps := orchestrators.CancelSessionDeps{SessionStore: stores.SessionStore}

	var err error
	if strings.HasSuffix(r.URL.Path, "/complete") {
		err = orchestrators.ExecuteCompleteSession(ctx, r.PathValue("id"), deps)
	} else {
		err = orchestrators.ExecuteCancelSession(ctx, r.PathValue("id"), deps)
	}
	switch {
	case errors.Is(err, session.ErrAlreadyFinished):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := stores.SessionStore.GetByID(ctx, r.PathValue("id"))
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, s)
}
