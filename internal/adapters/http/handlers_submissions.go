package web

import (
	"errors"
	"net/http"

	"hipat/internal/application/orchestrators"
	"hipat/internal/application/projections"
	"hipat/internal/domain/submission"
)

// handleSubmissions handles GET /api/submissions with optional status and
// tool filters.
func handleSubmissions(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryGetSubmissionList(r.Context(), projections.GetSubmissionListQuery{
		MentorID: mentorID(r),
		Status:   r.URL.Query().Get("status"),
		ToolID:   r.URL.Query().Get("tool"),
	}, projections.GetSubmissionListDeps{
		SubmissionStore: stores.SubmissionStore,
		ToolStore:       stores.ToolStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, rows)
}

// handleSubmissionStatus handles PATCH /api/submissions/{id}/status.
func handleSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	updated, err := orchestrators.ExecuteUpdateSubmissionStatus(r.Context(), orchestrators.UpdateSubmissionStatusInput{
		SubmissionID: r.PathValue("id"),
		Status:       body.Status,
	}, orchestrators.UpdateSubmissionStatusDeps{
		SubmissionStore: stores.SubmissionStore,
		Now:             timeNow,
	})
	switch {
	case errors.Is(err, submission.ErrNotFound):
		http.Error(w, "submission not found", http.StatusNotFound)
		return
	case errors.Is(err, submission.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		internalError(w, err)
		return
	}
	writeJSON(w, updated)
}

// handlePromoteSubmission handles POST /api/submissions/{id}/promote: the
// mentor turns a submission into a roster client and/or sends an invite.
// The invite email is queued in the outbox, so a provider outage never fails
// the promotion itself.
func handlePromoteSubmission(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AddToRoster bool `json:"add_to_roster"`
		SendInvite  bool `json:"send_invite"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecutePromoteSubmission(r.Context(), orchestrators.PromoteSubmissionInput{
		SubmissionID: r.PathValue("id"),
		AddToRoster:  body.AddToRoster,
		SendInvite:   body.SendInvite,
	}, orchestrators.PromoteSubmissionDeps{
		SubmissionStore: stores.SubmissionStore,
		ClientStore:     stores.ClientStore,
		Invites: &orchestrators.InviteQueue{
			OutboxStore: stores.OutboxStore,
			MentorStore: stores.MentorStore,
			GenerateID:  generateID,
			Now:         timeNow,
		},
		GenerateID: generateID,
		Now:        timeNow,
	})
	switch {
	case errors.Is(err, submission.ErrNotFound):
		http.Error(w, "submission not found", http.StatusNotFound)
		return
	case errors.Is(err, submission.ErrEmailRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		internalError(w, err)
		return
	}

	if promotionsTotal != nil {
		promotionsTotal.Inc()
	}
	writeJSON(w, map[string]any{
		"submission": result.Submission,
		"client_id":  result.ClientID,
	})
}
