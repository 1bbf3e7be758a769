package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"hipat/internal/domain/tool"
)

// SetToolActiveStore defines the tool store interface needed for
// activation changes.
type SetToolActiveStore interface {
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	Save(ctx context.Context, t tool.Tool) error
}

// SetToolActiveInput identifies the tool and the desired visibility.
type SetToolActiveInput struct {
	ToolID string
	Active bool
}

// SetToolActiveDeps holds dependencies for SetToolActive.
type SetToolActiveDeps struct {
	ToolStore SetToolActiveStore
}

// ExecuteSetToolActive hides or restores a custom tool in the catalog.
//
// System tools stay visible: deactivation is the soft-delete for
// mentor-created tools, and nothing is ever hard-deleted.
// PRE: ToolID is non-empty
// POST: Tool's IsActive flag matches input; submissions are untouched
func ExecuteSetToolActive(ctx context.Context, input SetToolActiveInput, deps SetToolActiveDeps) error {
	t, err := deps.ToolStore.GetByID(ctx, input.ToolID)
	if err != nil {
		return fmt.Errorf("tool not found: %w", err)
	}
	if !t.IsCustom {
		return tool.ErrNotCustom
	}

	if input.Active {
		err = t.Reactivate()
	} else {
		err = t.Deactivate()
	}
	if err != nil {
		return err
	}

	if err := deps.ToolStore.Save(ctx, t); err != nil {
		return err
	}
	slog.Info("tool_active_changed", "tool_id", t.ID, "active", t.IsActive)
	return nil
}
