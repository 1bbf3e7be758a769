package tool

import (
	"context"

	domain "hipat/internal/domain/tool"
)

// Store persists the tool catalog and per-mentor overrides.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Tool, error)
	Save(ctx context.Context, value domain.Tool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Tool, error)

	// GetOverride returns the mentor's override for a tool, or nil when the
	// mentor has not configured one.
	GetOverride(ctx context.Context, mentorID, toolID string) (*domain.Override, error)
	SaveOverride(ctx context.Context, o domain.Override) error
	ListOverrides(ctx context.Context, mentorID string) ([]domain.Override, error)
	DeleteOverride(ctx context.Context, mentorID, toolID string) error
}
