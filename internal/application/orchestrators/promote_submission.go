package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hipat/internal/domain/client"
	"hipat/internal/domain/submission"
)

// PromotionClientStore defines the roster store interface needed for
// promotion.
type PromotionClientStore interface {
	Save(ctx context.Context, c client.Client) error
}

// InviteEnqueuer queues an invite email for delivery.
type InviteEnqueuer interface {
	EnqueueInvite(ctx context.Context, sub submission.Submission, clientID string) error
}

// PromoteSubmissionInput carries the mentor's promotion decision.
type PromoteSubmissionInput struct {
	SubmissionID string
	AddToRoster  bool
	SendInvite   bool
}

// PromoteSubmissionResult reports what the promotion produced.
type PromoteSubmissionResult struct {
	Submission submission.Submission
	ClientID   string // empty when AddToRoster was false
}

// PromoteSubmissionDeps holds dependencies for PromoteSubmission.
type PromoteSubmissionDeps struct {
	SubmissionStore SubmissionStatusStore
	ClientStore     PromotionClientStore
	Invites         InviteEnqueuer // optional: nil skips invite delivery
	GenerateID      func() string
	Now             func() time.Time
}

// ExecutePromoteSubmission turns a submission into a roster client and/or
// sends an invite.
//
// The client write and the status update are two separate writes with no
// rollback: if the status update fails after the client was created, the
// client stays, a reconciliation event is logged, and the caller gets the
// error. The invite email itself is enqueued in the outbox so delivery
// failures retry independently of this flow.
// PRE: SubmissionID refers to an existing submission with an email
// POST: Roster and submission status reflect the mentor's decision
func ExecutePromoteSubmission(ctx context.Context, input PromoteSubmissionInput, deps PromoteSubmissionDeps) (PromoteSubmissionResult, error) {
	sub, err := deps.SubmissionStore.GetByID(ctx, input.SubmissionID)
	if err != nil {
		return PromoteSubmissionResult{}, submission.ErrNotFound
	}
	if strings.TrimSpace(sub.ClientData.Email) == "" {
		return PromoteSubmissionResult{}, submission.ErrEmailRequired
	}

	status := submission.StatusSubmitted
	if input.SendInvite {
		status = submission.StatusInvited
	}

	var clientID string
	if input.AddToRoster {
		c := client.Client{
			ID:        deps.GenerateID(),
			MentorID:  sub.MentorID,
			Name:      sub.ClientData.ContactName(),
			Email:     sub.ClientData.Email,
			Phone:     sub.ClientData.Phone,
			Source:    client.SourceToolSubmission,
			Status:    client.StatusProspect,
			CreatedAt: deps.Now(),
		}
		if err := c.Validate(); err != nil {
			return PromoteSubmissionResult{}, err
		}
		if err := deps.ClientStore.Save(ctx, c); err != nil {
			return PromoteSubmissionResult{}, fmt.Errorf("failed to create client: %w", err)
		}
		clientID = c.ID
		slog.Info("client_promoted", "client_id", c.ID, "mentor_id", c.MentorID, "submission_id", sub.ID)
	}

	updated, err := ExecuteUpdateSubmissionStatus(ctx, UpdateSubmissionStatusInput{
		SubmissionID: sub.ID,
		Status:       status,
		ClientID:     clientID,
	}, UpdateSubmissionStatusDeps{SubmissionStore: deps.SubmissionStore, Now: deps.Now})
	if err != nil {
		if clientID != "" {
			// Client exists but the submission still says otherwise; flag for
			// manual reconciliation rather than deleting the client.
			slog.Error("promotion_reconcile_needed", "submission_id", sub.ID, "client_id", clientID, "error", err)
		}
		return PromoteSubmissionResult{}, fmt.Errorf("failed to update submission: %w", err)
	}

	if input.SendInvite && deps.Invites != nil {
		if err := deps.Invites.EnqueueInvite(ctx, updated, clientID); err != nil {
			return PromoteSubmissionResult{}, fmt.Errorf("failed to queue invite: %w", err)
		}
	}

	return PromoteSubmissionResult{Submission: updated, ClientID: clientID}, nil
}
