package web

import (
	"errors"
	"net/http"
	"strings"

	"hipat/internal/application/orchestrators"
	"hipat/internal/application/projections"
	"hipat/internal/domain/tool"
)

// handleTools handles both GET (catalog list) and POST (add custom tool)
// for /api/tools.
func handleTools(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		views, err := projections.QueryGetToolList(ctx, mentorID(r), projections.GetToolListDeps{
			ToolStore:       stores.ToolStore,
			SubmissionStore: stores.SubmissionStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, views)
		return
	}

	// POST: add a mentor's own tool to the catalog
	input := orchestrators.CreateCustomToolInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Name = r.FormValue("Name")
		input.Icon = r.FormValue("Icon")
		input.Color = r.FormValue("Color")
		input.LiveURL = r.FormValue("LiveURL")
		input.SelfServiceURL = r.FormValue("SelfServiceURL")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}
	input.MentorID = mentorID(r)

	t, err := orchestrators.ExecuteCreateCustomTool(ctx, input, orchestrators.CreateCustomToolDeps{
		ToolStore:  stores.ToolStore,
		GenerateID: generateID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, t)
}

// handleGetTool handles GET /api/tools/{id}.
func handleGetTool(w http.ResponseWriter, r *http.Request) {
	view, err := projections.QueryGetTool(r.Context(), r.PathValue("id"), mentorID(r), stores.ToolStore)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, view)
}

// handleToolActivation handles POST /api/tools/{id}/deactivate and
// /api/tools/{id}/reactivate. Deactivation is the soft-delete for custom
// tools; system tools are refused.
func handleToolActivation(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteSetToolActive(r.Context(), orchestrators.SetToolActiveInput{
		ToolID: r.PathValue("id"),
		Active: strings.HasSuffix(r.URL.Path, "/reactivate"),
	}, orchestrators.SetToolActiveDeps{ToolStore: stores.ToolStore})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, tool.ErrNotCustom), errors.Is(err, tool.ErrAlreadyActive), errors.Is(err, tool.ErrAlreadyInactive):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.NotFound(w, r)
	}
}

// handleConfigureTool handles PUT /api/tools/{id}/config.
// URL validation here is explicit: a bad URL is rejected with a 400 rather
// than silently stored.
func handleConfigureTool(w http.ResponseWriter, r *http.Request) {
	input := orchestrators.ConfigureToolInput{}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	input.ToolID = r.PathValue("id")
	input.MentorID = mentorID(r)

	err := orchestrators.ExecuteConfigureTool(r.Context(), input, orchestrators.ConfigureToolDeps{
		ToolStore: stores.ToolStore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"status": "configured"})
}

// handleShareTool handles GET /api/tools/{id}/share.
// An unconfigured tool is a normal response, not an error: the dashboard
// shows a setup hint instead of a link.
func handleShareTool(w http.ResponseWriter, r *http.Request) {
	result, err := orchestrators.ExecuteShareTool(r.Context(), orchestrators.ShareToolInput{
		ToolID:   r.PathValue("id"),
		MentorID: mentorID(r),
		Theme:    r.URL.Query().Get("theme"),
	}, orchestrators.ShareToolDeps{
		ToolStore:   stores.ToolStore,
		MentorStore: stores.MentorStore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"url":            result.URL,
		"not_configured": result.NotConfigured,
	})
}
