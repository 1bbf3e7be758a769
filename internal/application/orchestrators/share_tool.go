package orchestrators

import (
	"context"
	"errors"
	"fmt"

	"hipat/internal/domain/mentor"
	"hipat/internal/domain/tool"
)

// ShareToolStore defines the tool store interface needed for link building.
type ShareToolStore interface {
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	GetOverride(ctx context.Context, mentorID, toolID string) (*tool.Override, error)
}

// ShareMentorStore defines the mentor lookup needed for link building.
type ShareMentorStore interface {
	GetByID(ctx context.Context, id string) (mentor.Mentor, error)
}

// ShareToolInput carries input for building a self-service share link.
type ShareToolInput struct {
	ToolID   string
	MentorID string
	Theme    string // optional: defaults to the mentor's preference
}

// ShareToolResult carries the shareable link, or NotConfigured when the tool
// has no usable self-service URL.
type ShareToolResult struct {
	URL           string
	NotConfigured bool
}

// ShareToolDeps holds dependencies for ShareTool.
type ShareToolDeps struct {
	ToolStore   ShareToolStore
	MentorStore ShareMentorStore
}

// ExecuteShareTool builds the self-service link a mentor hands to a prospect.
// An unusable URL is reported as NotConfigured, never as an error: this is the
// construction-time silent-safe-default half of the URL failure contract.
// PRE: ToolID and MentorID are non-empty
// POST: Returns the parameterized link or NotConfigured
func ExecuteShareTool(ctx context.Context, input ShareToolInput, deps ShareToolDeps) (ShareToolResult, error) {
	if input.ToolID == "" || input.MentorID == "" {
		return ShareToolResult{}, errors.New("tool and mentor must be specified")
	}

	t, err := deps.ToolStore.GetByID(ctx, input.ToolID)
	if err != nil {
		return ShareToolResult{}, fmt.Errorf("tool not found: %w", err)
	}
	m, err := deps.MentorStore.GetByID(ctx, input.MentorID)
	if err != nil {
		return ShareToolResult{}, fmt.Errorf("mentor not found: %w", err)
	}
	o, err := deps.ToolStore.GetOverride(ctx, input.MentorID, input.ToolID)
	if err != nil {
		return ShareToolResult{}, err
	}

	theme := input.Theme
	if !tool.ValidTheme(theme) {
		theme = m.Theme
	}
	if !tool.ValidTheme(theme) {
		theme = tool.ThemeLight
	}

	url := tool.BuildLaunchURL(t.EffectiveURL(tool.ModeSelfService, o), m.ID, m.DisplayName(), tool.ModeSelfService, theme)
	if url == "" {
		return ShareToolResult{NotConfigured: true}, nil
	}
	return ShareToolResult{URL: url}, nil
}
