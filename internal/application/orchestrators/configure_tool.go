package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hipat/internal/domain/tool"
)

// ConfigureToolStore defines the tool store interface needed for
// configuration.
type ConfigureToolStore interface {
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	Save(ctx context.Context, t tool.Tool) error
	GetOverride(ctx context.Context, mentorID, toolID string) (*tool.Override, error)
	SaveOverride(ctx context.Context, o tool.Override) error
}

// ConfigureToolInput carries a mentor's URL configuration for one tool.
// Empty URL fields clear the mentor's override for that mode.
type ConfigureToolInput struct {
	ToolID         string
	MentorID       string
	LiveURL        string
	SelfServiceURL string
}

// ConfigureToolDeps holds dependencies for ConfigureTool.
type ConfigureToolDeps struct {
	ToolStore ConfigureToolStore
}

// ExecuteConfigureTool persists a mentor's tool URL overrides.
//
// Persistence-time URL validation rejects non-http(s) schemes with an explicit
// error rather than the silent empty-string fallback used when building launch
// URLs: a broken display is recoverable, a stored bad URL is not.
// PRE: ToolID and MentorID are non-empty
// POST: Override saved; tool's IsConfigured flag recomputed
func ExecuteConfigureTool(ctx context.Context, input ConfigureToolInput, deps ConfigureToolDeps) error {
	if input.ToolID == "" || input.MentorID == "" {
		return errors.New("tool and mentor must be specified")
	}

	t, err := deps.ToolStore.GetByID(ctx, input.ToolID)
	if err != nil {
		return fmt.Errorf("tool not found: %w", err)
	}

	liveURL := strings.TrimSpace(input.LiveURL)
	selfURL := strings.TrimSpace(input.SelfServiceURL)
	if liveURL != "" {
		if err := tool.ValidateURL(liveURL); err != nil {
			return err
		}
	}
	if selfURL != "" {
		if err := tool.ValidateURL(selfURL); err != nil {
			return err
		}
	}

	o := tool.Override{
		MentorID:       input.MentorID,
		ToolID:         input.ToolID,
		LiveURL:        liveURL,
		SelfServiceURL: selfURL,
	}
	if err := deps.ToolStore.SaveOverride(ctx, o); err != nil {
		return err
	}

	// A tool is configured once any effective URL exists.
	configured := t.UsableIn(tool.ModeLive, &o) || t.UsableIn(tool.ModeSelfService, &o)
	if t.IsConfigured != configured {
		t.IsConfigured = configured
		if err := deps.ToolStore.Save(ctx, t); err != nil {
			return err
		}
	}

	slog.Info("tool_configured", "tool_id", input.ToolID, "mentor_id", input.MentorID, "live", liveURL != "", "self_service", selfURL != "")
	return nil
}

// CreateCustomToolInput carries input for a mentor-added tool.
type CreateCustomToolInput struct {
	MentorID       string
	Name           string
	Icon           string
	Color          string
	LiveURL        string
	SelfServiceURL string
}

// CreateCustomToolDeps holds dependencies for CreateCustomTool.
type CreateCustomToolDeps struct {
	ToolStore  ConfigureToolStore
	GenerateID func() string
}

// ExecuteCreateCustomTool adds a mentor's own tool to the catalog. URLs are
// validated explicitly, same as reconfiguration.
// PRE: Name is non-empty
// POST: Returns the created tool
func ExecuteCreateCustomTool(ctx context.Context, input CreateCustomToolInput, deps CreateCustomToolDeps) (tool.Tool, error) {
	if input.MentorID == "" {
		return tool.Tool{}, errors.New("mentor must be specified")
	}

	liveURL := strings.TrimSpace(input.LiveURL)
	selfURL := strings.TrimSpace(input.SelfServiceURL)
	if liveURL != "" {
		if err := tool.ValidateURL(liveURL); err != nil {
			return tool.Tool{}, err
		}
	}
	if selfURL != "" {
		if err := tool.ValidateURL(selfURL); err != nil {
			return tool.Tool{}, err
		}
	}

	t := tool.Tool{
		ID:             deps.GenerateID(),
		Name:           strings.TrimSpace(input.Name),
		Icon:           input.Icon,
		Color:          input.Color,
		IsActive:       true,
		IsConfigured:   liveURL != "" || selfURL != "",
		IsCustom:       true,
		LiveURL:        liveURL,
		SelfServiceURL: selfURL,
	}
	if err := t.Validate(); err != nil {
		return tool.Tool{}, err
	}
	if err := deps.ToolStore.Save(ctx, t); err != nil {
		return tool.Tool{}, err
	}

	slog.Info("custom_tool_created", "tool_id", t.ID, "mentor_id", input.MentorID, "name", t.Name)
	return t, nil
}
