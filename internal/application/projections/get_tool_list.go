package projections

import (
	"context"
	"sort"

	"hipat/internal/domain/tool"
)

// ToolListToolStore defines the tool store interface needed by the tool list
// projection.
type ToolListToolStore interface {
	List(ctx context.Context) ([]tool.Tool, error)
	ListOverrides(ctx context.Context, mentorID string) ([]tool.Override, error)
}

// ToolListSubmissionStore defines the submission store interface needed by
// the tool list projection.
type ToolListSubmissionStore interface {
	CountByTool(ctx context.Context, mentorID string) (map[string]int, error)
}

// ToolView is one tool as the dashboard shows it: catalog data merged with
// the mentor's override.
type ToolView struct {
	Tool            tool.Tool
	LiveURL         string // effective, override first
	SelfServiceURL  string
	Configured      bool // usable in at least one mode for this mentor
	SubmissionCount int
}

// GetToolListDeps holds dependencies for the tool list projection.
type GetToolListDeps struct {
	ToolStore       ToolListToolStore
	SubmissionStore ToolListSubmissionStore // optional: nil skips counts
}

// QueryGetToolList returns the active tool catalog for a mentor, with
// per-mentor overrides applied and submission counts attached.
// PRE: mentorID is non-empty
// POST: Returns active tools sorted by name
func QueryGetToolList(ctx context.Context, mentorID string, deps GetToolListDeps) ([]ToolView, error) {
	tools, err := deps.ToolStore.List(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := deps.ToolStore.ListOverrides(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	byTool := make(map[string]*tool.Override, len(overrides))
	for i := range overrides {
		byTool[overrides[i].ToolID] = &overrides[i]
	}

	var counts map[string]int
	if deps.SubmissionStore != nil {
		counts, err = deps.SubmissionStore.CountByTool(ctx, mentorID)
		if err != nil {
			return nil, err
		}
	}

	var views []ToolView
	for _, t := range tools {
		if !t.IsActive {
			continue
		}
		o := byTool[t.ID]
		live := t.EffectiveURL(tool.ModeLive, o)
		selfService := t.EffectiveURL(tool.ModeSelfService, o)
		views = append(views, ToolView{
			Tool:            t,
			LiveURL:         live,
			SelfServiceURL:  selfService,
			Configured:      live != "" || selfService != "",
			SubmissionCount: counts[t.ID],
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Tool.Name < views[j].Tool.Name
	})
	return views, nil
}
