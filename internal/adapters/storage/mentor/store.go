package mentor

import (
	"context"

	domain "hipat/internal/domain/mentor"
)

// Store persists Mentor state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Mentor, error)
	GetByEmail(ctx context.Context, email string) (domain.Mentor, error)
	Save(ctx context.Context, value domain.Mentor) error
}
