package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"hipat/internal/domain/mentor"
)

// SeedMentorStore defines the mentor store interface needed for seeding.
type SeedMentorStore interface {
	GetByEmail(ctx context.Context, email string) (mentor.Mentor, error)
	Save(ctx context.Context, m mentor.Mentor) error
}

// SeedMentorDeps holds dependencies for SeedMentor.
type SeedMentorDeps struct {
	MentorStore SeedMentorStore
	GenerateID  func() string
}

// ExecuteSeedMentor ensures the configured default mentor exists. Idempotent:
// an existing mentor with the same email is returned unchanged.
// PRE: email is non-empty
// POST: Returns the mentor id
func ExecuteSeedMentor(ctx context.Context, deps SeedMentorDeps, name, email, businessName string) (string, error) {
	if existing, err := deps.MentorStore.GetByEmail(ctx, email); err == nil {
		return existing.ID, nil
	}

	m := mentor.Mentor{
		ID:           deps.GenerateID(),
		Name:         name,
		Email:        email,
		BusinessName: businessName,
		Theme:        mentor.ThemeLight,
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	if err := deps.MentorStore.Save(ctx, m); err != nil {
		return "", fmt.Errorf("failed to seed mentor: %w", err)
	}
	slog.Info("mentor_seeded", "mentor_id", m.ID, "email", email)
	return m.ID, nil
}
