package client

import (
	"context"

	domain "hipat/internal/domain/client"
)

// Store persists Client state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Client, error)
	Save(ctx context.Context, value domain.Client) error
	Delete(ctx context.Context, id string) error
	ListByMentor(ctx context.Context, mentorID string, filter ListFilter) ([]domain.Client, error)
	CountByStatus(ctx context.Context, mentorID string) (map[string]int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string
	Search string // case-insensitive substring match on name or email
	Limit  int
	Offset int
}
