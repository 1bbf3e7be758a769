package projections

import (
	"context"
	"testing"

	"hipat/internal/domain/tool"
)

// mockToolStore implements ToolListToolStore for testing.
type mockToolStore struct {
	tools     []tool.Tool
	overrides []tool.Override
}

func (m *mockToolStore) List(_ context.Context) ([]tool.Tool, error) {
	return m.tools, nil
}

func (m *mockToolStore) ListOverrides(_ context.Context, mentorID string) ([]tool.Override, error) {
	var out []tool.Override
	for _, o := range m.overrides {
		if o.MentorID == mentorID {
			out = append(out, o)
		}
	}
	return out, nil
}

// mockSubmissionCounter implements ToolListSubmissionStore for testing.
type mockSubmissionCounter struct {
	counts map[string]int
}

func (m *mockSubmissionCounter) CountByTool(_ context.Context, _ string) (map[string]int, error) {
	return m.counts, nil
}

func TestQueryGetToolList(t *testing.T) {
	store := &mockToolStore{
		tools: []tool.Tool{
			{ID: "t-b", Name: "Body Composition", IsActive: true, LiveURL: "https://tools.example.com/body"},
			{ID: "t-a", Name: "Assessment", IsActive: true},
			{ID: "t-gone", Name: "Retired", IsActive: false, LiveURL: "https://tools.example.com/old"},
		},
		overrides: []tool.Override{
			{MentorID: "m1", ToolID: "t-a", SelfServiceURL: "https://mentor.example.com/assess"},
		},
	}
	counter := &mockSubmissionCounter{counts: map[string]int{"t-b": 3}}

	views, err := QueryGetToolList(context.Background(), "m1", GetToolListDeps{
		ToolStore:       store,
		SubmissionStore: counter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 active tools, got %d", len(views))
	}
	// Sorted by name: Assessment first.
	if views[0].Tool.ID != "t-a" || views[1].Tool.ID != "t-b" {
		t.Errorf("expected name order [t-a t-b], got [%s %s]", views[0].Tool.ID, views[1].Tool.ID)
	}

	// t-a has no catalog URL but an override makes it configured.
	if !views[0].Configured {
		t.Error("expected override to make t-a configured")
	}
	if views[0].SelfServiceURL != "https://mentor.example.com/assess" {
		t.Errorf("expected override URL, got %q", views[0].SelfServiceURL)
	}
	if views[0].LiveURL != "" {
		t.Errorf("expected empty live URL for t-a, got %q", views[0].LiveURL)
	}

	if views[1].SubmissionCount != 3 {
		t.Errorf("expected 3 submissions for t-b, got %d", views[1].SubmissionCount)
	}
}

func TestQueryGetToolList_NoCounts(t *testing.T) {
	store := &mockToolStore{
		tools: []tool.Tool{{ID: "t-a", Name: "Assessment", IsActive: true}},
	}

	views, err := QueryGetToolList(context.Background(), "m1", GetToolListDeps{ToolStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].Configured {
		t.Errorf("expected one unconfigured tool, got %+v", views)
	}
}
