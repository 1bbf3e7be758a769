package projections

import (
	"context"
	"fmt"

	"hipat/internal/domain/tool"
)

// GetToolToolStore defines the tool store interface needed by the single-tool
// projection.
type GetToolToolStore interface {
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	GetOverride(ctx context.Context, mentorID, toolID string) (*tool.Override, error)
}

// QueryGetTool returns one tool with the mentor's override applied. Inactive
// tools are returned too: the catalog view filters, a direct lookup does not.
func QueryGetTool(ctx context.Context, toolID, mentorID string, store GetToolToolStore) (ToolView, error) {
	t, err := store.GetByID(ctx, toolID)
	if err != nil {
		return ToolView{}, fmt.Errorf("tool not found: %w", err)
	}
	o, err := store.GetOverride(ctx, mentorID, toolID)
	if err != nil {
		return ToolView{}, err
	}

	live := t.EffectiveURL(tool.ModeLive, o)
	selfService := t.EffectiveURL(tool.ModeSelfService, o)
	return ToolView{
		Tool:           t,
		LiveURL:        live,
		SelfServiceURL: selfService,
		Configured:     live != "" || selfService != "",
	}, nil
}
