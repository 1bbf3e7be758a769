package submission_test

import (
	"testing"
	"time"

	"hipat/internal/domain/submission"
)

var testTime = time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

// TestSubmissionValidation tests validation of Submission.
func TestSubmissionValidation(t *testing.T) {
	tests := []struct {
		name    string
		sub     submission.Submission
		wantErr bool
	}{
		{
			name: "valid submission",
			sub: submission.Submission{
				ID:          "s1",
				ToolID:      "t1",
				MentorID:    "m1",
				ClientData:  submission.ClientData{Email: "prospect@example.com"},
				Status:      submission.StatusSubmitted,
				SubmittedAt: testTime,
			},
			wantErr: false,
		},
		{
			name: "missing email",
			sub: submission.Submission{
				ID:          "s2",
				ToolID:      "t1",
				MentorID:    "m1",
				ClientData:  submission.ClientData{Name: "Jo"},
				Status:      submission.StatusSubmitted,
				SubmittedAt: testTime,
			},
			wantErr: true,
		},
		{
			name: "whitespace email",
			sub: submission.Submission{
				ID:          "s3",
				ToolID:      "t1",
				MentorID:    "m1",
				ClientData:  submission.ClientData{Email: "   "},
				Status:      submission.StatusSubmitted,
				SubmittedAt: testTime,
			},
			wantErr: true,
		},
		{
			name: "unknown status",
			sub: submission.Submission{
				ID:          "s4",
				ToolID:      "t1",
				MentorID:    "m1",
				ClientData:  submission.ClientData{Email: "a@b.com"},
				Status:      "deleted",
				SubmittedAt: testTime,
			},
			wantErr: true,
		},
		{
			name: "missing tool id",
			sub: submission.Submission{
				ID:          "s5",
				MentorID:    "m1",
				ClientData:  submission.ClientData{Email: "a@b.com"},
				Status:      submission.StatusSubmitted,
				SubmittedAt: testTime,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestContactName tests the email local-part fallback.
func TestContactName(t *testing.T) {
	tests := []struct {
		name string
		data submission.ClientData
		want string
	}{
		{name: "name present", data: submission.ClientData{Name: "Jordan Lee", Email: "jl@example.com"}, want: "Jordan Lee"},
		{name: "fallback to local part", data: submission.ClientData{Email: "a@b.com"}, want: "a"},
		{name: "whitespace name falls back", data: submission.ClientData{Name: "  ", Email: "coach@example.com"}, want: "coach"},
		{name: "no at sign", data: submission.ClientData{Email: "weird"}, want: "weird"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.ContactName(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestApplyStatus tests status stamping.
func TestApplyStatus(t *testing.T) {
	s := submission.Submission{
		ID:          "s1",
		ToolID:      "t1",
		MentorID:    "m1",
		ClientData:  submission.ClientData{Email: "a@b.com"},
		Status:      submission.StatusSubmitted,
		SubmittedAt: testTime,
	}

	if err := s.ApplyStatus(submission.StatusInvited, testTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != submission.StatusInvited {
		t.Errorf("expected status invited, got %s", s.Status)
	}
	if s.InvitedAt.IsZero() {
		t.Error("expected InvitedAt to be stamped")
	}
	if !s.SignedUpAt.IsZero() {
		t.Error("expected SignedUpAt to remain unset")
	}

	later := testTime.Add(time.Hour)
	if err := s.ApplyStatus(submission.StatusSignedUp, later); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.SignedUpAt.Equal(later) {
		t.Errorf("expected SignedUpAt=%v, got %v", later, s.SignedUpAt)
	}

	if err := s.ApplyStatus("bogus", later); err != submission.ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}
