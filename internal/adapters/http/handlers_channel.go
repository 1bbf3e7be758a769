package web

import (
	"errors"
	"net/http"

	"hipat/internal/application/channel"
	"hipat/internal/domain/submission"
	"hipat/internal/domain/tool"
)

// channelView is the externally visible snapshot of a channel.
type channelView struct {
	ChannelID    string `json:"channel_id"`
	State        string `json:"state"`
	FrameHeight  int    `json:"frame_height"`
	LastError    string `json:"last_error,omitempty"`
	SubmissionID string `json:"submission_id,omitempty"`
}

func viewOf(c *channel.Channel) channelView {
	return channelView{
		ChannelID:    c.ID(),
		State:        c.State(),
		FrameHeight:  c.FrameHeight(),
		LastError:    c.LastError(),
		SubmissionID: c.SubmissionID(),
	}
}

// handleOpenChannel handles POST /api/channels: it opens a tool dialog and
// returns the frame parameters for the host page.
func handleOpenChannel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ToolID string `json:"tool_id"`
		Mode   string `json:"mode"`
		Theme  string `json:"theme"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	m, err := stores.MentorStore.GetByID(r.Context(), mentorID(r))
	if err != nil {
		http.Error(w, "mentor not found", http.StatusBadRequest)
		return
	}

	c, err := hub.Open(r.Context(), channel.OpenInput{
		ToolID:     body.ToolID,
		MentorID:   m.ID,
		MentorName: m.DisplayName(),
		Mode:       body.Mode,
		Theme:      body.Theme,
	})
	switch {
	case errors.Is(err, channel.ErrNotConfigured):
		// Not an error state: the dialog shows setup guidance instead of a frame.
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, map[string]any{"not_configured": true})
		return
	case errors.Is(err, tool.ErrInvalidMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]any{
		"channel_id":   c.ID(),
		"frame_token":  c.FrameToken(),
		"launch_url":   c.LaunchURL(),
		"state":        c.State(),
		"frame_height": c.FrameHeight(),
	})
}

// handleChannelState handles GET /api/channels/{id}.
func handleChannelState(w http.ResponseWriter, r *http.Request) {
	c, ok := hub.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "channel not found", http.StatusNotFound)
		return
	}
	writeJSON(w, viewOf(c))
}

// handleChannelMessage handles POST /api/channels/{id}/messages: one inbound
// frame message. The frame's source token travels in the X-Frame-Token header
// and the browser supplies the Origin header.
//
// Rejected messages get an empty 204: the sender learns nothing about why a
// message was dropped, or that it was.
func handleChannelMessage(w http.ResponseWriter, r *http.Request) {
	c, ok := hub.Get(r.PathValue("id"))
	if !ok {
		// Same silence as a rejection: unknown channel ids leak nothing.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var msg channel.Message
	if err := strictDecode(r, &msg); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	result, err := c.Deliver(r.Context(), r.Header.Get("X-Frame-Token"), r.Header.Get("Origin"), msg)
	switch {
	case errors.Is(err, channel.ErrRejected):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, channel.ErrClosed):
		http.Error(w, "channel is closed", http.StatusGone)
		return
	case errors.Is(err, submission.ErrEmailRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		internalError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"state":         result.State,
		"frame_height":  result.FrameHeight,
		"submission_id": result.SubmissionID,
		"closed":        result.Closed,
	})
}

// handleChannelEvent handles POST /api/channels/{id}/events: native frame
// lifecycle events reported by the host page rather than the frame itself.
func handleChannelEvent(w http.ResponseWriter, r *http.Request) {
	c, ok := hub.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "channel not found", http.StatusNotFound)
		return
	}

	var body struct {
		Event string `json:"event"`
	}
	if err := strictDecode(r, &body); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	switch body.Event {
	case "loaded":
		c.MarkLoaded()
	case "load_failed":
		c.MarkLoadFailed()
	default:
		http.Error(w, "unknown event", http.StatusBadRequest)
		return
	}
	writeJSON(w, viewOf(c))
}

// handleChannelRetry handles POST /api/channels/{id}/retry.
func handleChannelRetry(w http.ResponseWriter, r *http.Request) {
	c, ok := hub.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "channel not found", http.StatusNotFound)
		return
	}
	if err := c.Retry(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, viewOf(c))
}

// handleCloseChannel handles DELETE /api/channels/{id}. Closing is
// idempotent: dismissing an already-dismissed dialog is fine.
func handleCloseChannel(w http.ResponseWriter, r *http.Request) {
	hub.Close(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
