package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"hipat/internal/domain/tool"
)

// SeedToolStore defines the tool store interface needed for seeding.
type SeedToolStore interface {
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	Save(ctx context.Context, t tool.Tool) error
}

// SeedToolsDeps holds dependencies for SeedTools.
type SeedToolsDeps struct {
	ToolStore SeedToolStore
}

// systemTools is the default catalog. URLs ship empty: each mentor configures
// their own tool endpoints, so seeded tools start unconfigured.
var systemTools = []tool.Tool{
	{ID: "tool-body-composition", Name: "Body Composition Analysis", Icon: "scale", Color: "#2563eb", IsActive: true},
	{ID: "tool-nutrition-intake", Name: "Nutrition Intake", Icon: "apple", Color: "#16a34a", IsActive: true},
	{ID: "tool-movement-screen", Name: "Movement Screen", Icon: "activity", Color: "#ea580c", IsActive: true},
	{ID: "tool-sleep-assessment", Name: "Sleep Assessment", Icon: "moon", Color: "#7c3aed", IsActive: true},
	{ID: "tool-goal-finder", Name: "Goal Finder", Icon: "target", Color: "#db2777", IsActive: true},
}

// ExecuteSeedTools seeds the system tool catalog. Idempotent: existing tools
// are left untouched so mentor configuration survives restarts.
// PRE: ToolStore is connected
// POST: Every system tool exists in the catalog
func ExecuteSeedTools(ctx context.Context, deps SeedToolsDeps) error {
	var created int
	for _, t := range systemTools {
		if _, err := deps.ToolStore.GetByID(ctx, t.ID); err == nil {
			continue
		}
		if err := deps.ToolStore.Save(ctx, t); err != nil {
			return fmt.Errorf("failed to seed tool %s: %w", t.ID, err)
		}
		created++
	}
	if created > 0 {
		slog.Info("tool_catalog_seeded", "created", created)
	}
	return nil
}
