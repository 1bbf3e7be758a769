package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"hipat/internal/domain/client"
	"hipat/internal/domain/submission"
)

// mockSubmissionStore implements SubmissionStatusStore for testing.
type mockSubmissionStore struct {
	subs    map[string]submission.Submission
	saveErr error
}

func newMockSubmissionStore() *mockSubmissionStore {
	return &mockSubmissionStore{subs: make(map[string]submission.Submission)}
}

func (m *mockSubmissionStore) GetByID(_ context.Context, id string) (submission.Submission, error) {
	s, ok := m.subs[id]
	if !ok {
		return submission.Submission{}, errors.New("not found")
	}
	return s, nil
}

func (m *mockSubmissionStore) Save(_ context.Context, s submission.Submission) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.subs[s.ID] = s
	return nil
}

// mockClientStore implements PromotionClientStore for testing.
type mockClientStore struct {
	clients map[string]client.Client
	saveErr error
}

func newMockClientStore() *mockClientStore {
	return &mockClientStore{clients: make(map[string]client.Client)}
}

func (m *mockClientStore) Save(_ context.Context, c client.Client) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.clients[c.ID] = c
	return nil
}

// mockInvites implements InviteEnqueuer for testing.
type mockInvites struct {
	enqueued []string // submission ids
}

func (m *mockInvites) EnqueueInvite(_ context.Context, sub submission.Submission, _ string) error {
	m.enqueued = append(m.enqueued, sub.ID)
	return nil
}

var promoteTime = time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)

func promoteNow() time.Time { return promoteTime }

func promoteID() string { return "client-001" }

func seedSubmission(store *mockSubmissionStore, email, name string) submission.Submission {
	s := submission.Submission{
		ID:          "sub-1",
		ToolID:      "t1",
		MentorID:    "m1",
		ClientData:  submission.ClientData{Name: name, Email: email},
		Status:      submission.StatusSubmitted,
		SubmittedAt: promoteTime.Add(-time.Hour),
	}
	store.subs[s.ID] = s
	return s
}

// TestPromote_AddToRosterNoInvite tests the roster-only promotion path:
// client named from the email local part, status stays submitted, client id
// attached.
func TestPromote_AddToRosterNoInvite(t *testing.T) {
	subs := newMockSubmissionStore()
	clients := newMockClientStore()
	seedSubmission(subs, "a@b.com", "")

	res, err := ExecutePromoteSubmission(context.Background(), PromoteSubmissionInput{
		SubmissionID: "sub-1",
		AddToRoster:  true,
		SendInvite:   false,
	}, PromoteSubmissionDeps{
		SubmissionStore: subs,
		ClientStore:     clients,
		GenerateID:      promoteID,
		Now:             promoteNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, ok := clients.clients["client-001"]
	if !ok {
		t.Fatal("expected client to be created")
	}
	if c.Name != "a" {
		t.Errorf("expected client named from email local part, got %q", c.Name)
	}
	if c.Source != client.SourceToolSubmission {
		t.Errorf("expected source tool_submission, got %s", c.Source)
	}

	if res.Submission.Status != submission.StatusSubmitted {
		t.Errorf("expected status submitted, got %s", res.Submission.Status)
	}
	if res.Submission.ClientID != "client-001" {
		t.Errorf("expected client id attached, got %q", res.Submission.ClientID)
	}
	if !res.Submission.InvitedAt.IsZero() {
		t.Error("expected InvitedAt unset without invite")
	}
}

// TestPromote_WithInvite tests that sendInvite marks the submission invited
// and queues an invite.
func TestPromote_WithInvite(t *testing.T) {
	subs := newMockSubmissionStore()
	clients := newMockClientStore()
	invites := &mockInvites{}
	seedSubmission(subs, "jordan@example.com", "Jordan Lee")

	res, err := ExecutePromoteSubmission(context.Background(), PromoteSubmissionInput{
		SubmissionID: "sub-1",
		AddToRoster:  true,
		SendInvite:   true,
	}, PromoteSubmissionDeps{
		SubmissionStore: subs,
		ClientStore:     clients,
		Invites:         invites,
		GenerateID:      promoteID,
		Now:             promoteNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Submission.Status != submission.StatusInvited {
		t.Errorf("expected status invited, got %s", res.Submission.Status)
	}
	if res.Submission.InvitedAt.IsZero() {
		t.Error("expected InvitedAt stamped")
	}
	if len(invites.enqueued) != 1 || invites.enqueued[0] != "sub-1" {
		t.Errorf("expected invite enqueued for sub-1, got %v", invites.enqueued)
	}
	if clients.clients["client-001"].Name != "Jordan Lee" {
		t.Errorf("expected captured name used, got %q", clients.clients["client-001"].Name)
	}
}

// TestPromote_InviteWithoutRoster tests the status-only path.
func TestPromote_InviteWithoutRoster(t *testing.T) {
	subs := newMockSubmissionStore()
	clients := newMockClientStore()
	seedSubmission(subs, "a@b.com", "")

	res, err := ExecutePromoteSubmission(context.Background(), PromoteSubmissionInput{
		SubmissionID: "sub-1",
		AddToRoster:  false,
		SendInvite:   true,
	}, PromoteSubmissionDeps{
		SubmissionStore: subs,
		ClientStore:     clients,
		GenerateID:      promoteID,
		Now:             promoteNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients.clients) != 0 {
		t.Error("expected no client created")
	}
	if res.Submission.Status != submission.StatusInvited {
		t.Errorf("expected status invited, got %s", res.Submission.Status)
	}
	if res.ClientID != "" {
		t.Errorf("expected empty client id, got %q", res.ClientID)
	}
}

// TestPromote_MissingEmail tests the validation refusal.
func TestPromote_MissingEmail(t *testing.T) {
	subs := newMockSubmissionStore()
	s := seedSubmission(subs, "", "Jordan")
	s.ClientData.Email = "  "
	subs.subs[s.ID] = s

	_, err := ExecutePromoteSubmission(context.Background(), PromoteSubmissionInput{
		SubmissionID: "sub-1",
		AddToRoster:  true,
	}, PromoteSubmissionDeps{
		SubmissionStore: subs,
		ClientStore:     newMockClientStore(),
		GenerateID:      promoteID,
		Now:             promoteNow,
	})
	if !errors.Is(err, submission.ErrEmailRequired) {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

// TestPromote_UnknownSubmission tests the not-found signal.
func TestPromote_UnknownSubmission(t *testing.T) {
	_, err := ExecutePromoteSubmission(context.Background(), PromoteSubmissionInput{
		SubmissionID: "missing",
		AddToRoster:  true,
	}, PromoteSubmissionDeps{
		SubmissionStore: newMockSubmissionStore(),
		ClientStore:     newMockClientStore(),
		GenerateID:      promoteID,
		Now:             promoteNow,
	})
	if !errors.Is(err, submission.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestPromote_StatusUpdateFailureKeepsClient tests the documented
// partial-failure contract: the created client is not rolled back.
func TestPromote_StatusUpdateFailureKeepsClient(t *testing.T) {
	subs := newMockSubmissionStore()
	clients := newMockClientStore()
	seedSubmission(subs, "a@b.com", "")
	subs.saveErr = errors.New("disk full")

	_, err := ExecutePromoteSubmission(context.Background(), PromoteSubmissionInput{
		SubmissionID: "sub-1",
		AddToRoster:  true,
	}, PromoteSubmissionDeps{
		SubmissionStore: subs,
		ClientStore:     clients,
		GenerateID:      promoteID,
		Now:             promoteNow,
	})
	if err == nil {
		t.Fatal("expected error from failed status update")
	}
	if _, ok := clients.clients["client-001"]; !ok {
		t.Error("created client should not be rolled back")
	}
}
