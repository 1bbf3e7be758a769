package web

import (
	"net/http"

	"hipat/internal/application/orchestrators"
)

// handleLandingPage handles GET /book/{mentorID}: the public booking page a
// prospect lands on from a share link. A referral tag in the query string is
// carried through to the booked session.
func handleLandingPage(w http.ResponseWriter, r *http.Request) {
	m, err := stores.MentorStore.GetByID(r.Context(), r.PathValue("mentorID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	renderTemplate(w, r, "landing.html", map[string]any{
		"MentorID":   m.ID,
		"MentorName": m.DisplayName(),
		"Referral":   r.URL.Query().Get("ref"),
	})
}

// handleLandingBooking handles POST /book/{mentorID}: a prospect books their
// first session. Prospects are not on the roster, so no client lookup runs.
func handleLandingBooking(w http.ResponseWriter, r *http.Request) {
	m, err := stores.MentorStore.GetByID(r.Context(), r.PathValue("mentorID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	input := orchestrators.BookSessionInput{MentorID: m.ID}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input.ClientName = r.FormValue("Name")
	input.ClientEmail = r.FormValue("Email")
	input.Date = r.FormValue("Date")
	input.StartTime = r.FormValue("StartTime")
	input.EndTime = r.FormValue("EndTime")
	input.Notes = r.FormValue("Notes")
	input.Referral = r.FormValue("Referral")

	s, err := orchestrators.ExecuteBookSession(r.Context(), input, orchestrators.BookSessionDeps{
		SessionStore: stores.SessionStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		renderTemplate(w, r, "landing.html", map[string]any{
			"MentorID":   m.ID,
			"MentorName": m.DisplayName(),
			"Referral":   input.Referral,
			"Error":      err.Error(),
		})
		return
	}

	renderTemplate(w, r, "landing_confirm.html", map[string]any{
		"MentorName": m.DisplayName(),
		"ClientName": s.ClientName,
		"Date":       s.Date,
		"StartTime":  s.StartTime,
	})
}
