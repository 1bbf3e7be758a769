package session

import (
	"context"

	domain "hipat/internal/domain/session"
)

// Store persists Session state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	Delete(ctx context.Context, id string) error

	// ListByMentorBetween returns a mentor's sessions with fromDate <= date
	// <= toDate, ordered by date then start time.
	ListByMentorBetween(ctx context.Context, mentorID string, fromDate, toDate string) ([]domain.Session, error)
}
