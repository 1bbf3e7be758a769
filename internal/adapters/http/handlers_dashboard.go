package web

import (
	"net/http"

	"hipat/internal/application/projections"
)

// handleDashboardMetrics handles GET /api/dashboard: the mentor's headline
// numbers (roster counts, submission funnel, conversion, week's sessions).
func handleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetDashboardMetrics(r.Context(), mentorID(r), projections.GetDashboardMetricsDeps{
		ClientStore:     stores.ClientStore,
		SubmissionStore: stores.SubmissionStore,
		SessionStore:    stores.SessionStore,
	}, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}
