package web

import (
	"net/http"
	"strconv"
	"strings"

	clientStore "hipat/internal/adapters/storage/client"
	"hipat/internal/domain/client"
)

// handleClients handles GET (roster list) and POST (direct add) for
// /api/clients.
func handleClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		filter := clientStore.ListFilter{
			Status: r.URL.Query().Get("status"),
			Search: r.URL.Query().Get("q"),
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				filter.Limit = n
			}
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				filter.Offset = n
			}
		}

		clients, err := stores.ClientStore.ListByMentor(ctx, mentorID(r), filter)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, clients)
		return
	}

	// POST: mentor adds a client directly, outside any tool submission
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		body.Name = r.FormValue("Name")
		body.Email = r.FormValue("Email")
		body.Phone = r.FormValue("Phone")
	} else {
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	c := client.Client{
		ID:        generateID(),
		MentorID:  mentorID(r),
		Name:      strings.TrimSpace(body.Name),
		Email:     strings.TrimSpace(body.Email),
		Phone:     strings.TrimSpace(body.Phone),
		Source:    client.SourceDirect,
		Status:    client.StatusActive,
		CreatedAt: timeNow(),
	}
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := stores.ClientStore.Save(ctx, c); err != nil {
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, c)
}

// handleArchiveClient handles POST /api/clients/{id}/archive and
// POST /api/clients/{id}/restore.
func handleArchiveClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := stores.ClientStore.GetByID(ctx, r.PathValue("id"))
	if err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	if strings.HasSuffix(r.URL.Path, "/restore") {
		err = c.Restore()
	} else {
		err = c.Archive()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if err := stores.ClientStore.Save(ctx, c); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, c)
}
