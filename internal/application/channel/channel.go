package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"hipat/internal/domain/submission"
	"hipat/internal/domain/tool"
)

// Channel lifecycle states.
const (
	StateIdle     = "idle"
	StateLoading  = "loading"
	StateReady    = "ready"
	StateError    = "error"
	StateTimedOut = "timed_out"
	StateClosed   = "closed"
)

// LoadTimeout is the deadline for a tool frame to signal readiness.
const LoadTimeout = 30 * time.Second

// User-facing messages for the retryable load failures.
const (
	TimeoutErrorMessage = "The tool took too long to load. Check your connection and try again."
	LoadErrorMessage    = "The tool failed to load. Try again."
)

// Errors returned by channel operations.
var (
	// ErrRejected marks messages dropped by the origin/source predicate.
	// Rejections are silent: no detail reaches the sender.
	ErrRejected = errors.New("message rejected")

	// ErrNotConfigured means the tool has no usable URL for the requested
	// mode; no channel is opened at all.
	ErrNotConfigured = errors.New("tool is not configured for this mode")

	ErrClosed       = errors.New("channel is closed")
	ErrNotRetryable = errors.New("channel is not in a retryable state")
)

// ToolSource supplies the current tool record and mentor override. The origin
// predicate recomputes the expected origin from these on every message rather
// than trusting a cached value, so URL reconfiguration takes effect
// immediately.
type ToolSource interface {
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	GetOverride(ctx context.Context, mentorID, toolID string) (*tool.Override, error)
}

// Completer records a validated tool completion as a submission.
type Completer interface {
	RecordCompletion(ctx context.Context, toolID, mentorID string, data submission.ClientData, results map[string]any) (submission.Submission, error)
}

// DeliverResult reports the effect of an accepted message.
type DeliverResult struct {
	State        string
	FrameHeight  int
	SubmissionID string
	Closed       bool
}

// Channel hosts one embedded tool run: it owns the frame lifecycle state, the
// single-shot load deadline, and the message acceptance predicate. All methods
// are safe for concurrent use.
type Channel struct {
	mu sync.Mutex

	id         string
	toolID     string
	mentorID   string
	mode       string
	frameToken string // source binding issued at open time

	state        string
	frameHeight  int
	lastError    string
	launchURL    string
	submissionID string

	timer   *time.Timer
	timeout time.Duration

	tools     ToolSource
	completer Completer
	metrics   *Metrics
}

// ID returns the channel identifier.
func (c *Channel) ID() string { return c.id }

// FrameToken returns the source binding a frame must echo with every message.
func (c *Channel) FrameToken() string { return c.frameToken }

// LaunchURL returns the fully parameterized tool URL for the frame.
func (c *Channel) LaunchURL() string { return c.launchURL }

// State returns the current lifecycle state.
func (c *Channel) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FrameHeight returns the applied frame height.
func (c *Channel) FrameHeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameHeight
}

// LastError returns the user-facing message for the current error state, or
// "" when there is none.
func (c *Channel) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// SubmissionID returns the submission created by a completed run, or "".
func (c *Channel) SubmissionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submissionID
}

// load arms the deadline and enters the loading state. Called at open and on
// retry with the lock held.
func (c *Channel) load() {
	c.state = StateLoading
	c.lastError = ""
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.timeout, c.expire)
}

// expire fires the single-shot load deadline. A deadline that fires after the
// channel left the loading state is a no-op.
func (c *Channel) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoading {
		return
	}
	c.state = StateTimedOut
	c.lastError = TimeoutErrorMessage
	c.metrics.incTimeout()
	slog.Warn("tool_channel_timeout", "channel_id", c.id, "tool_id", c.toolID, "mentor_id", c.mentorID)
}

// stopTimer cancels the pending deadline, if any. Caller holds the lock.
func (c *Channel) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// MarkLoaded records a native frame load event, equivalent to TOOL_READY.
// PRE: none
// POST: loading → ready; other states unchanged
func (c *Channel) MarkLoaded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoading {
		return
	}
	c.stopTimer()
	c.state = StateReady
}

// MarkLoadFailed records a native frame load failure.
// PRE: none
// POST: loading → error with a retryable user-facing message
func (c *Channel) MarkLoadFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoading {
		return
	}
	c.stopTimer()
	c.state = StateError
	c.lastError = LoadErrorMessage
	slog.Warn("tool_channel_load_failed", "channel_id", c.id, "tool_id", c.toolID)
}

// Retry re-issues the frame load after a timeout or load error.
// PRE: channel is in error or timed_out state
// POST: state is loading, error cleared, deadline re-armed
func (c *Channel) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateError && c.state != StateTimedOut {
		return ErrNotRetryable
	}
	c.load()
	slog.Info("tool_channel_retry", "channel_id", c.id, "tool_id", c.toolID)
	return nil
}

// Close dismisses the channel from any state.
// POST: state is closed, deadline cancelled
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return
	}
	c.stopTimer()
	c.state = StateClosed
}

// expectedOrigin recomputes the accepted origin from the tool's stored URL for
// the active mode. Any lookup or parse failure means no origin is acceptable.
func (c *Channel) expectedOrigin(ctx context.Context) (string, error) {
	t, err := c.tools.GetByID(ctx, c.toolID)
	if err != nil {
		return "", err
	}
	o, err := c.tools.GetOverride(ctx, c.mentorID, c.toolID)
	if err != nil {
		return "", err
	}
	return tool.Origin(t.EffectiveURL(c.mode, o))
}

// Deliver applies one inbound frame message.
//
// Acceptance predicate, evaluated per message: the source token must match the
// frame binding issued at open, and the origin must equal the origin of the
// tool's current URL for the active mode. Failing either check yields
// ErrRejected and no observable effect; callers must not surface rejection
// details to the sender.
// PRE: msg decoded from the wire
// POST: accepted messages advance the lifecycle; TOOL_COMPLETE records a
// submission and closes the channel
func (c *Channel) Deliver(ctx context.Context, sourceToken, origin string, msg Message) (DeliverResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return DeliverResult{State: StateClosed}, ErrClosed
	}

	if sourceToken != c.frameToken {
		c.metrics.incRejection()
		slog.Debug("tool_channel_reject", "channel_id", c.id, "reason", "source_mismatch")
		return DeliverResult{}, ErrRejected
	}
	expected, err := c.expectedOrigin(ctx)
	if err != nil || origin == "" || origin != expected {
		c.metrics.incRejection()
		slog.Debug("tool_channel_reject", "channel_id", c.id, "reason", "origin_mismatch")
		return DeliverResult{}, ErrRejected
	}

	switch msg.Type {
	case MsgToolReady:
		if c.state == StateLoading {
			c.stopTimer()
			c.state = StateReady
		}
		return c.result(), nil

	case MsgToolResize:
		c.frameHeight = ClampHeight(msg.Height)
		return c.result(), nil

	case MsgToolCancel:
		c.stopTimer()
		c.state = StateClosed
		slog.Info("tool_channel_cancelled", "channel_id", c.id, "tool_id", c.toolID)
		return c.result(), nil

	case MsgToolComplete:
		return c.complete(ctx, msg)

	default:
		c.metrics.incRejection()
		slog.Debug("tool_channel_reject", "channel_id", c.id, "reason", "unknown_type")
		return DeliverResult{}, ErrRejected
	}
}

// complete validates and records a TOOL_COMPLETE message. Caller holds the
// lock, which serializes duplicate completions: the first one closes the
// channel, so a second TOOL_COMPLETE fails the closed-state check in Deliver.
func (c *Channel) complete(ctx context.Context, msg Message) (DeliverResult, error) {
	if strings.TrimSpace(msg.ClientData.Email) == "" {
		return c.result(), submission.ErrEmailRequired
	}

	data := submission.ClientData{
		Name:  msg.ClientData.Name,
		Email: msg.ClientData.Email,
		Phone: msg.ClientData.Phone,
	}
	sub, err := c.completer.RecordCompletion(ctx, c.toolID, c.mentorID, data, msg.Results)
	if err != nil {
		return c.result(), fmt.Errorf("failed to record submission: %w", err)
	}

	c.submissionID = sub.ID
	c.stopTimer()
	c.state = StateClosed
	c.metrics.incCompletion()
	slog.Info("tool_channel_completed", "channel_id", c.id, "tool_id", c.toolID, "submission_id", sub.ID)
	return c.result(), nil
}

// result snapshots the externally visible channel state. Caller holds the lock.
func (c *Channel) result() DeliverResult {
	return DeliverResult{
		State:        c.state,
		FrameHeight:  c.frameHeight,
		SubmissionID: c.submissionID,
		Closed:       c.state == StateClosed,
	}
}
