package web

import (
	"net/http"

	"hipat/internal/application/orchestrators"
)

// handleMentorProfile handles GET and PUT for /api/mentor: the signed-in
// mentor's own profile.
func handleMentorProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mentorID(r)

	if r.Method == "GET" {
		m, err := stores.MentorStore.GetByID(ctx, id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, m)
		return
	}

	input := orchestrators.UpdateMentorProfileInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	input.MentorID = id

	m, err := orchestrators.ExecuteUpdateMentorProfile(ctx, input, orchestrators.UpdateMentorProfileDeps{
		MentorStore: stores.MentorStore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, m)
}
