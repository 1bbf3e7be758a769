package submission

import (
	"context"

	domain "hipat/internal/domain/submission"
)

// Store persists Submission state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Submission, error)
	Save(ctx context.Context, value domain.Submission) error
	Delete(ctx context.Context, id string) error
	ListByMentor(ctx context.Context, mentorID string) ([]domain.Submission, error)

	// CountByStatus returns submission counts per status for one mentor.
	CountByStatus(ctx context.Context, mentorID string) (map[string]int, error)
	// CountByTool returns submission counts per tool for one mentor.
	CountByTool(ctx context.Context, mentorID string) (map[string]int, error)
}
