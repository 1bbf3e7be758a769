package orchestrators

import (
	"context"
	"testing"

	"hipat/internal/domain/mentor"
)

func seededMentorStore() *mockMentorStore {
	return &mockMentorStore{mentors: map[string]mentor.Mentor{
		"m1": {ID: "m1", Name: "Pat Rivera", Email: "pat@example.com", BusinessName: "Rivera Coaching", Theme: mentor.ThemeLight},
	}}
}

func TestUpdateMentorProfile_PartialEdit(t *testing.T) {
	store := seededMentorStore()

	updated, err := ExecuteUpdateMentorProfile(context.Background(), UpdateMentorProfileInput{
		MentorID: "m1",
		Theme:    mentor.ThemeDark,
	}, UpdateMentorProfileDeps{MentorStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Theme != mentor.ThemeDark {
		t.Errorf("theme = %q, want dark", updated.Theme)
	}
	if updated.Name != "Pat Rivera" {
		t.Errorf("name changed unexpectedly: %q", updated.Name)
	}
}

func TestUpdateMentorProfile_ClearsBusinessName(t *testing.T) {
	store := seededMentorStore()

	empty := ""
	updated, err := ExecuteUpdateMentorProfile(context.Background(), UpdateMentorProfileInput{
		MentorID:     "m1",
		BusinessName: &empty,
	}, UpdateMentorProfileDeps{MentorStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.BusinessName != "" {
		t.Errorf("business name = %q, want empty", updated.BusinessName)
	}
	// Display name falls back to the mentor's own name
	if got := updated.DisplayName(); got != "Pat Rivera" {
		t.Errorf("display name = %q, want %q", got, "Pat Rivera")
	}
}

func TestUpdateMentorProfile_RejectsBadTheme(t *testing.T) {
	store := seededMentorStore()

	_, err := ExecuteUpdateMentorProfile(context.Background(), UpdateMentorProfileInput{
		MentorID: "m1",
		Theme:    "neon",
	}, UpdateMentorProfileDeps{MentorStore: store})
	if err == nil {
		t.Fatal("expected validation error for bad theme")
	}
	if store.mentors["m1"].Theme != mentor.ThemeLight {
		t.Error("failed update must not persist")
	}
}

func TestUpdateMentorProfile_UnknownMentor(t *testing.T) {
	store := seededMentorStore()

	_, err := ExecuteUpdateMentorProfile(context.Background(), UpdateMentorProfileInput{MentorID: "ghost"}, UpdateMentorProfileDeps{MentorStore: store})
	if err == nil {
		t.Fatal("expected error for unknown mentor")
	}
}
