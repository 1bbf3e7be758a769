package web

import "net/http"

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	// Tool catalog
	mux.HandleFunc("GET /api/tools", handleTools)
	mux.HandleFunc("POST /api/tools", handleTools)
	mux.HandleFunc("GET /api/tools/{id}", handleGetTool)
	mux.HandleFunc("PUT /api/tools/{id}/config", handleConfigureTool)
	mux.HandleFunc("GET /api/tools/{id}/share", handleShareTool)
	mux.HandleFunc("POST /api/tools/{id}/deactivate", handleToolActivation)
	mux.HandleFunc("POST /api/tools/{id}/reactivate", handleToolActivation)

	// Mentor profile
	mux.HandleFunc("GET /api/mentor", handleMentorProfile)
	mux.HandleFunc("PUT /api/mentor", handleMentorProfile)

	// Embedded tool channels
	mux.HandleFunc("POST /api/channels", handleOpenChannel)
	mux.HandleFunc("GET /api/channels/{id}", handleChannelState)
	mux.HandleFunc("POST /api/channels/{id}/messages", handleChannelMessage)
	mux.HandleFunc("POST /api/channels/{id}/events", handleChannelEvent)
	mux.HandleFunc("POST /api/channels/{id}/retry", handleChannelRetry)
	mux.HandleFunc("DELETE /api/channels/{id}", handleCloseChannel)

	// Submissions
	mux.HandleFunc("GET /api/submissions", handleSubmissions)
	mux.HandleFunc("PATCH /api/submissions/{id}/status", handleSubmissionStatus)
	mux.HandleFunc("POST /api/submissions/{id}/promote", handlePromoteSubmission)

	// Client roster
	mux.HandleFunc("GET /api/clients", handleClients)
	mux.HandleFunc("POST /api/clients", handleClients)
	mux.HandleFunc("POST /api/clients/{id}/archive", handleArchiveClient)
	mux.HandleFunc("POST /api/clients/{id}/restore", handleArchiveClient)

	// Sessions
	mux.HandleFunc("GET /api/sessions", handleSessions)
	mux.HandleFunc("POST /api/sessions", handleSessions)
	mux.HandleFunc("POST /api/sessions/{id}/cancel", handleSessionTransition)
	mux.HandleFunc("POST /api/sessions/{id}/complete", handleSessionTransition)

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", handleDashboardMetrics)

	// Public booking landing page
	mux.HandleFunc("GET /book/{mentorID}", handleLandingPage)
	mux.HandleFunc("POST /book/{mentorID}", handleLandingBooking)

	// Outbox administration
	mux.HandleFunc("GET /admin/outbox", handleAdminOutboxList)
	mux.HandleFunc("POST /admin/outbox/{id}/{action}", handleAdminOutboxAction)
}
