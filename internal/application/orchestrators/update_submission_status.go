package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"hipat/internal/domain/submission"
)

// SubmissionStatusStore defines the submission store interface needed for
// status updates.
type SubmissionStatusStore interface {
	GetByID(ctx context.Context, id string) (submission.Submission, error)
	Save(ctx context.Context, s submission.Submission) error
}

// UpdateSubmissionStatusInput carries a status transition request.
type UpdateSubmissionStatusInput struct {
	SubmissionID string
	Status       string
	ClientID     string // optional: attached when set, never cleared
}

// UpdateSubmissionStatusDeps holds dependencies for UpdateSubmissionStatus.
type UpdateSubmissionStatusDeps struct {
	SubmissionStore SubmissionStatusStore
	Now             func() time.Time
}

// ExecuteUpdateSubmissionStatus moves a submission along its progression.
// Unknown ids yield submission.ErrNotFound and mutate nothing. InvitedAt is
// stamped when the status becomes invited, SignedUpAt when it becomes
// signed_up; transition legality is not checked (last write wins).
// PRE: Status is a valid submission status
// POST: Returns the updated submission
func ExecuteUpdateSubmissionStatus(ctx context.Context, input UpdateSubmissionStatusInput, deps UpdateSubmissionStatusDeps) (submission.Submission, error) {
	if !submission.ValidStatus(input.Status) {
		return submission.Submission{}, submission.ErrInvalidStatus
	}

	s, err := deps.SubmissionStore.GetByID(ctx, input.SubmissionID)
	if err != nil {
		return submission.Submission{}, submission.ErrNotFound
	}

	if err := s.ApplyStatus(input.Status, deps.Now()); err != nil {
		return submission.Submission{}, err
	}
	if input.ClientID != "" {
		s.ClientID = input.ClientID
	}

	if err := deps.SubmissionStore.Save(ctx, s); err != nil {
		return submission.Submission{}, err
	}

	slog.Info("submission_status_updated", "submission_id", s.ID, "status", s.Status, "client_id", s.ClientID)
	return s, nil
}
