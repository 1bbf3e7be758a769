package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"hipat/internal/domain/submission"
)

// SubmissionSaveStore defines the submission store interface needed for
// recording completions.
type SubmissionSaveStore interface {
	Save(ctx context.Context, s submission.Submission) error
}

// RecordSubmissionInput carries a validated tool completion.
type RecordSubmissionInput struct {
	ToolID     string
	MentorID   string
	ClientData submission.ClientData
	Results    map[string]any
}

// RecordSubmissionDeps holds dependencies for RecordSubmission.
type RecordSubmissionDeps struct {
	SubmissionStore SubmissionSaveStore
	GenerateID      func() string
	Now             func() time.Time
}

// ExecuteRecordSubmission persists one completed tool run with status
// "submitted", a fresh id and timestamp.
// PRE: input came from an accepted TOOL_COMPLETE message
// POST: Returns the stored submission
func ExecuteRecordSubmission(ctx context.Context, input RecordSubmissionInput, deps RecordSubmissionDeps) (submission.Submission, error) {
	s := submission.Submission{
		ID:          deps.GenerateID(),
		ToolID:      input.ToolID,
		MentorID:    input.MentorID,
		ClientData:  input.ClientData,
		Results:     input.Results,
		Status:      submission.StatusSubmitted,
		SubmittedAt: deps.Now(),
	}
	if err := s.Validate(); err != nil {
		return submission.Submission{}, err
	}
	if err := deps.SubmissionStore.Save(ctx, s); err != nil {
		return submission.Submission{}, err
	}

	slog.Info("submission_recorded", "submission_id", s.ID, "tool_id", s.ToolID, "mentor_id", s.MentorID)
	return s, nil
}

// SubmissionRecorder adapts ExecuteRecordSubmission to the channel's
// Completer interface.
type SubmissionRecorder struct {
	Deps RecordSubmissionDeps
}

// RecordCompletion implements channel.Completer.
func (r *SubmissionRecorder) RecordCompletion(ctx context.Context, toolID, mentorID string, data submission.ClientData, results map[string]any) (submission.Submission, error) {
	return ExecuteRecordSubmission(ctx, RecordSubmissionInput{
		ToolID:     toolID,
		MentorID:   mentorID,
		ClientData: data,
		Results:    results,
	}, r.Deps)
}
