package orchestrators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"

	"hipat/internal/adapters/email"
	"hipat/internal/domain/mentor"
	"hipat/internal/domain/outbox"
	"hipat/internal/domain/submission"
)

// InviteOutboxStore defines the outbox store interface needed for queuing
// invites.
type InviteOutboxStore interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// InvitePayload is the JSON structure persisted in an invite outbox entry.
type InvitePayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// inviteTemplate is the markdown body of the invite email, rendered to HTML
// with goldmark before sending.
const inviteTemplate = `# You're invited, %s!

**%s** reviewed your results and would like to work with you.

Reply to this email to book your first session, or just show up with your
questions — that's what the first one is for.

_Sent via HiPat on behalf of %s._
`

// BuildInviteEmail renders the invite subject and HTML body for a promoted
// prospect.
// PRE: sub has a contact email
// POST: Returns subject and HTML body
func BuildInviteEmail(m mentor.Mentor, sub submission.Submission) (string, string, error) {
	subject := fmt.Sprintf("%s has invited you to start coaching", m.DisplayName())
	md := fmt.Sprintf(inviteTemplate, sub.ClientData.ContactName(), m.DisplayName(), m.DisplayName())

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", "", fmt.Errorf("failed to render invite email: %w", err)
	}
	return subject, buf.String(), nil
}

// InviteQueue enqueues invite emails into the outbox. It implements
// InviteEnqueuer for the promotion flow.
type InviteQueue struct {
	OutboxStore InviteOutboxStore
	MentorStore ShareMentorStore
	GenerateID  func() string
	Now         func() time.Time
}

// EnqueueInvite queues one invite email for outbox delivery.
// PRE: sub has a contact email
// POST: Outbox entry saved with status pending
func (q *InviteQueue) EnqueueInvite(ctx context.Context, sub submission.Submission, clientID string) error {
	m, err := q.MentorStore.GetByID(ctx, sub.MentorID)
	if err != nil {
		return fmt.Errorf("mentor not found: %w", err)
	}

	subject, html, err := BuildInviteEmail(m, sub)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(InvitePayload{
		To:      []string{sub.ClientData.Email},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal invite payload: %w", err)
	}

	e := outbox.Entry{
		ID:          q.GenerateID(),
		ActionType:  outbox.ActionTypeInviteEmail,
		Payload:     string(payload),
		Status:      outbox.StatusPending,
		MaxAttempts: outbox.DefaultMaxAttempts,
		CreatedAt:   q.Now(),
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if err := q.OutboxStore.Save(ctx, e); err != nil {
		return err
	}

	slog.Info("invite_enqueued", "entry_id", e.ID, "submission_id", sub.ID, "client_id", clientID)
	return nil
}

// InviteEmailExecutor delivers invite outbox entries through the email
// sender.
type InviteEmailExecutor struct {
	Sender  email.Sender
	From    string
	ReplyTo string
}

// Execute implements ActionExecutor for invite_email entries.
// PRE: payload is a marshalled InvitePayload
// POST: Returns the provider message id on success
func (e *InviteEmailExecutor) Execute(ctx context.Context, payload string) (string, error) {
	var p InvitePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return "", fmt.Errorf("failed to unmarshal invite payload: %w", err)
	}

	res, err := e.Sender.Send(ctx, email.SendRequest{
		To:      p.To,
		From:    e.From,
		Subject: p.Subject,
		HTML:    p.HTML,
		ReplyTo: e.ReplyTo,
	})
	if err != nil {
		return "", err
	}
	return res.MessageID, nil
}
