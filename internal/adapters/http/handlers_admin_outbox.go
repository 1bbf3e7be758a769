package web

import (
	"net/http"
	"strconv"

	"hipat/internal/application/orchestrators"
	"hipat/internal/domain/outbox"
)

// outboxExecutors builds the executor set used for manual outbox actions.
// Mirrors the wiring of the background worker so an admin retry behaves
// exactly like a scheduled one.
func outboxExecutors() map[string]orchestrators.ActionExecutor {
	return map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeInviteEmail: &orchestrators.InviteEmailExecutor{
			Sender:  emailSender,
			From:    emailFromAddress,
			ReplyTo: emailReplyTo,
		},
	}
}

// handleAdminOutboxList handles GET /admin/outbox: failed entries by
// default, everything still in flight with ?status=all.
func handleAdminOutboxList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var entries []outbox.Entry
	var err error
	if r.URL.Query().Get("status") == "all" {
		entries, err = stores.OutboxStore.ListPending(ctx, limit)
	} else {
		entries, err = stores.OutboxStore.ListFailed(ctx, limit)
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, entries)
}

// handleAdminOutboxAction handles POST /admin/outbox/{id}/retry and
// POST /admin/outbox/{id}/abandon.
func handleAdminOutboxAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryID := r.PathValue("id")
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, outboxExecutors())

	switch r.PathValue("action") {
	case "retry":
		if err := processor.ProcessSingle(ctx, entryID); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]string{"status": "retry triggered"})

	case "abandon":
		if err := processor.AbandonEntry(ctx, entryID); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]string{"status": "abandoned"})

	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}
