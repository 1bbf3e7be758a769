package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"hipat/internal/domain/submission"
)

var recordTime = time.Date(2026, 5, 1, 16, 45, 0, 0, time.UTC)

// TestRecordSubmission tests creating a submission from a tool completion.
func TestRecordSubmission(t *testing.T) {
	store := newMockSubmissionStore()

	s, err := ExecuteRecordSubmission(context.Background(), RecordSubmissionInput{
		ToolID:     "t1",
		MentorID:   "m1",
		ClientData: submission.ClientData{Name: "Jo", Email: "jo@example.com"},
		Results:    map[string]any{"bodyFat": 18.5, "notes": "am training"},
	}, RecordSubmissionDeps{
		SubmissionStore: store,
		GenerateID:      func() string { return "sub-001" },
		Now:             func() time.Time { return recordTime },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "sub-001" {
		t.Errorf("expected id sub-001, got %s", s.ID)
	}
	if s.Status != submission.StatusSubmitted {
		t.Errorf("expected status submitted, got %s", s.Status)
	}
	if !s.SubmittedAt.Equal(recordTime) {
		t.Errorf("expected SubmittedAt=%v, got %v", recordTime, s.SubmittedAt)
	}
	if _, ok := store.subs["sub-001"]; !ok {
		t.Error("expected submission persisted")
	}
}

// TestRecordSubmission_MissingEmail tests input validation.
func TestRecordSubmission_MissingEmail(t *testing.T) {
	store := newMockSubmissionStore()

	_, err := ExecuteRecordSubmission(context.Background(), RecordSubmissionInput{
		ToolID:     "t1",
		MentorID:   "m1",
		ClientData: submission.ClientData{Name: "Jo"},
	}, RecordSubmissionDeps{
		SubmissionStore: store,
		GenerateID:      func() string { return "sub-001" },
		Now:             func() time.Time { return recordTime },
	})
	if !errors.Is(err, submission.ErrEmailRequired) {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
	if len(store.subs) != 0 {
		t.Error("expected nothing persisted")
	}
}

// TestUpdateSubmissionStatus_StampsInvitedAt tests the invited transition.
func TestUpdateSubmissionStatus_StampsInvitedAt(t *testing.T) {
	store := newMockSubmissionStore()
	seedSubmission(store, "a@b.com", "")

	s, err := ExecuteUpdateSubmissionStatus(context.Background(), UpdateSubmissionStatusInput{
		SubmissionID: "sub-1",
		Status:       submission.StatusInvited,
	}, UpdateSubmissionStatusDeps{SubmissionStore: store, Now: func() time.Time { return recordTime }})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != submission.StatusInvited {
		t.Errorf("expected invited, got %s", s.Status)
	}
	if s.InvitedAt.IsZero() {
		t.Error("expected InvitedAt stamped")
	}
	if !s.SignedUpAt.IsZero() {
		t.Error("expected SignedUpAt unset")
	}
}

// TestUpdateSubmissionStatus_UnknownID tests the not-found signal and that
// nothing is mutated.
func TestUpdateSubmissionStatus_UnknownID(t *testing.T) {
	store := newMockSubmissionStore()
	existing := seedSubmission(store, "a@b.com", "")

	_, err := ExecuteUpdateSubmissionStatus(context.Background(), UpdateSubmissionStatusInput{
		SubmissionID: "nope",
		Status:       submission.StatusInvited,
	}, UpdateSubmissionStatusDeps{SubmissionStore: store, Now: func() time.Time { return recordTime }})
	if !errors.Is(err, submission.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if store.subs["sub-1"].Status != existing.Status {
		t.Error("existing record must not be mutated")
	}
}

// TestUpdateSubmissionStatus_AttachesClientID tests the optional client link.
func TestUpdateSubmissionStatus_AttachesClientID(t *testing.T) {
	store := newMockSubmissionStore()
	seedSubmission(store, "a@b.com", "")

	s, err := ExecuteUpdateSubmissionStatus(context.Background(), UpdateSubmissionStatusInput{
		SubmissionID: "sub-1",
		Status:       submission.StatusBecameClient,
		ClientID:     "client-42",
	}, UpdateSubmissionStatusDeps{SubmissionStore: store, Now: func() time.Time { return recordTime }})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ClientID != "client-42" {
		t.Errorf("expected client id attached, got %q", s.ClientID)
	}
	if !s.InvitedAt.IsZero() || !s.SignedUpAt.IsZero() {
		t.Error("became_client must not stamp invite/signup timestamps")
	}
}
