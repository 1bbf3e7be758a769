package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"hipat/internal/adapters/email"
	"hipat/internal/domain/mentor"
	"hipat/internal/domain/outbox"
	"hipat/internal/domain/submission"
)

// mockOutboxStore implements InviteOutboxStore for testing.
type mockOutboxStore struct {
	entries map[string]outbox.Entry
}

func (m *mockOutboxStore) Save(_ context.Context, e outbox.Entry) error {
	m.entries[e.ID] = e
	return nil
}

// mockSender implements email.Sender for testing.
type mockSender struct {
	sent []email.SendRequest
	fail error
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.fail != nil {
		return email.SendResult{}, m.fail
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-001", SentAt: time.Now()}, nil
}

func (m *mockSender) SendBatch(ctx context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	var results []email.SendResult
	for _, req := range reqs {
		res, err := m.Send(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func inviteSubmission() submission.Submission {
	return submission.Submission{
		ID:          "sub-1",
		ToolID:      "t1",
		MentorID:    "m1",
		ClientData:  submission.ClientData{Email: "jordan@example.com"},
		Status:      submission.StatusInvited,
		SubmittedAt: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
	}
}

// TestBuildInviteEmail tests markdown rendering of the invite body.
func TestBuildInviteEmail(t *testing.T) {
	m := mentor.Mentor{ID: "m1", Name: "Alex", Email: "alex@example.com", BusinessName: "Alex Fitness", Theme: mentor.ThemeLight}

	subject, html, err := BuildInviteEmail(m, inviteSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(subject, "Alex Fitness") {
		t.Errorf("expected business name in subject, got %q", subject)
	}
	if !strings.Contains(html, "<h1>") {
		t.Errorf("expected rendered markdown heading, got %q", html)
	}
	if !strings.Contains(html, "jordan") {
		t.Errorf("expected contact name (email local part) in body, got %q", html)
	}
}

// TestEnqueueInvite tests outbox entry creation.
func TestEnqueueInvite(t *testing.T) {
	store := &mockOutboxStore{entries: make(map[string]outbox.Entry)}
	mentors := &mockMentorStore{mentors: map[string]mentor.Mentor{
		"m1": {ID: "m1", Name: "Alex", Email: "alex@example.com", Theme: mentor.ThemeLight},
	}}
	q := &InviteQueue{
		OutboxStore: store,
		MentorStore: mentors,
		GenerateID:  func() string { return "outbox-1" },
		Now:         func() time.Time { return time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC) },
	}

	if err := q.EnqueueInvite(context.Background(), inviteSubmission(), "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, ok := store.entries["outbox-1"]
	if !ok {
		t.Fatal("expected outbox entry saved")
	}
	if e.ActionType != outbox.ActionTypeInviteEmail {
		t.Errorf("expected invite_email action, got %s", e.ActionType)
	}
	if e.Status != outbox.StatusPending {
		t.Errorf("expected pending status, got %s", e.Status)
	}

	var p InvitePayload
	if err := json.Unmarshal([]byte(e.Payload), &p); err != nil {
		t.Fatalf("payload does not unmarshal: %v", err)
	}
	if len(p.To) != 1 || p.To[0] != "jordan@example.com" {
		t.Errorf("expected recipient jordan@example.com, got %v", p.To)
	}
}

// TestInviteEmailExecutor tests delivery through the sender.
func TestInviteEmailExecutor(t *testing.T) {
	sender := &mockSender{}
	exec := &InviteEmailExecutor{Sender: sender, From: "HiPat <noreply@hipat.app>", ReplyTo: "support@hipat.app"}

	payload, _ := json.Marshal(InvitePayload{To: []string{"a@b.com"}, Subject: "Hi", HTML: "<p>hi</p>"})
	id, err := exec.Execute(context.Background(), string(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "msg-001" {
		t.Errorf("expected provider message id, got %q", id)
	}
	if len(sender.sent) != 1 || sender.sent[0].ReplyTo != "support@hipat.app" {
		t.Errorf("unexpected send requests: %+v", sender.sent)
	}

	if _, err := exec.Execute(context.Background(), "{not json"); err == nil {
		t.Error("expected error for malformed payload")
	}

	sender.fail = errors.New("provider down")
	if _, err := exec.Execute(context.Background(), string(payload)); err == nil {
		t.Error("expected sender failure surfaced for outbox retry")
	}
}
