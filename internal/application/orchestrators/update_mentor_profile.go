package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hipat/internal/domain/mentor"
)

// UpdateMentorProfileStore defines the mentor store interface needed for
// profile updates.
type UpdateMentorProfileStore interface {
	GetByID(ctx context.Context, id string) (mentor.Mentor, error)
	Save(ctx context.Context, m mentor.Mentor) error
}

// UpdateMentorProfileInput carries the editable profile fields. Empty fields
// keep their current value; Theme must be light or dark when set.
type UpdateMentorProfileInput struct {
	MentorID     string
	Name         string
	Email        string
	BusinessName *string // nil keeps, empty string clears
	Theme        string
}

// UpdateMentorProfileDeps holds dependencies for UpdateMentorProfile.
type UpdateMentorProfileDeps struct {
	MentorStore UpdateMentorProfileStore
}

// ExecuteUpdateMentorProfile applies partial edits to a mentor's profile.
// PRE: MentorID is non-empty
// POST: Returns the updated mentor after validation
func ExecuteUpdateMentorProfile(ctx context.Context, input UpdateMentorProfileInput, deps UpdateMentorProfileDeps) (mentor.Mentor, error) {
	m, err := deps.MentorStore.GetByID(ctx, input.MentorID)
	if err != nil {
		return mentor.Mentor{}, fmt.Errorf("mentor not found: %w", err)
	}

	if strings.TrimSpace(input.Name) != "" {
		m.Name = strings.TrimSpace(input.Name)
	}
	if strings.TrimSpace(input.Email) != "" {
		m.Email = strings.TrimSpace(input.Email)
	}
	if input.BusinessName != nil {
		m.BusinessName = strings.TrimSpace(*input.BusinessName)
	}
	if input.Theme != "" {
		m.Theme = input.Theme
	}

	if err := m.Validate(); err != nil {
		return mentor.Mentor{}, err
	}
	if err := deps.MentorStore.Save(ctx, m); err != nil {
		return mentor.Mentor{}, err
	}
	slog.Info("mentor_profile_updated", "mentor_id", m.ID)
	return m, nil
}
