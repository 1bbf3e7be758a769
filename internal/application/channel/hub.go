package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"hipat/internal/domain/tool"
)

func defaultID() string { return uuid.New().String() }

// Hub tracks the open channels, one per in-progress tool dialog. Channels are
// created by Open and removed when the host dialog is dismissed.
type Hub struct {
	mu       sync.Mutex
	channels map[string]*Channel

	tools      ToolSource
	completer  Completer
	timeout    time.Duration
	generateID func() string
	metrics    *Metrics
}

// HubOption adjusts hub construction, mainly for tests.
type HubOption func(*Hub)

// WithTimeout overrides the frame load deadline.
func WithTimeout(d time.Duration) HubOption {
	return func(h *Hub) { h.timeout = d }
}

// WithIDGenerator overrides channel/frame-token id generation.
func WithIDGenerator(gen func() string) HubOption {
	return func(h *Hub) { h.generateID = gen }
}

// WithMetrics attaches lifecycle counters to every channel the hub opens.
func WithMetrics(m *Metrics) HubOption {
	return func(h *Hub) { h.metrics = m }
}

// NewHub creates a channel hub.
// PRE: tools and completer are non-nil
// POST: Returns a hub with the default 30s load deadline
func NewHub(tools ToolSource, completer Completer, opts ...HubOption) *Hub {
	h := &Hub{
		channels:   make(map[string]*Channel),
		tools:      tools,
		completer:  completer,
		timeout:    LoadTimeout,
		generateID: defaultID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OpenInput carries the parameters for opening a tool channel.
type OpenInput struct {
	ToolID     string
	MentorID   string
	MentorName string
	Mode       string
	Theme      string
}

// Open builds the launch URL for the requested tool and mode and starts a new
// channel in the loading state.
//
// An unusable URL (absent, malformed, or non-http(s)) yields ErrNotConfigured
// and no channel: "not configured" is a distinct state, not a load error.
// PRE: input.Mode and input.Theme are valid
// POST: Returns a loading channel with an armed deadline
func (h *Hub) Open(ctx context.Context, input OpenInput) (*Channel, error) {
	if !tool.ValidMode(input.Mode) {
		return nil, tool.ErrInvalidMode
	}
	theme := input.Theme
	if !tool.ValidTheme(theme) {
		theme = tool.ThemeLight
	}

	t, err := h.tools.GetByID(ctx, input.ToolID)
	if err != nil {
		return nil, fmt.Errorf("tool not found: %w", err)
	}
	o, err := h.tools.GetOverride(ctx, input.MentorID, input.ToolID)
	if err != nil {
		return nil, err
	}

	launch := tool.BuildLaunchURL(t.EffectiveURL(input.Mode, o), input.MentorID, input.MentorName, input.Mode, theme)
	if launch == "" {
		return nil, ErrNotConfigured
	}

	c := &Channel{
		id:          h.generateID(),
		toolID:      input.ToolID,
		mentorID:    input.MentorID,
		mode:        input.Mode,
		frameToken:  h.generateID(),
		state:       StateIdle,
		frameHeight: MinFrameHeight,
		launchURL:   launch,
		timeout:     h.timeout,
		tools:       h.tools,
		completer:   h.completer,
		metrics:     h.metrics,
	}

	c.mu.Lock()
	c.load()
	c.mu.Unlock()

	h.mu.Lock()
	h.channels[c.id] = c
	h.mu.Unlock()

	h.metrics.incOpen()
	slog.Info("tool_channel_opened", "channel_id", c.id, "tool_id", input.ToolID, "mentor_id", input.MentorID, "mode", input.Mode)
	return c, nil
}

// Get returns the channel with the given id.
func (h *Hub) Get(id string) (*Channel, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.channels[id]
	return c, ok
}

// Close dismisses a channel and removes it from the hub. Unknown ids are a
// no-op so a dialog can be dismissed twice safely.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	c, ok := h.channels[id]
	if ok {
		delete(h.channels, id)
	}
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

// OpenCount returns the number of tracked channels.
func (h *Hub) OpenCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels)
}
