package submission

import (
	"errors"
	"strings"
	"time"
)

// Status constants for the one-way submission progression.
// submitted → invited|signed_up → became_client. Transition legality is not
// enforced on update; last write wins.
const (
	StatusSubmitted    = "submitted"
	StatusInvited      = "invited"
	StatusSignedUp     = "signed_up"
	StatusBecameClient = "became_client"
)

// Domain errors
var (
	ErrEmailRequired = errors.New("submission requires a contact email")
	ErrInvalidStatus = errors.New("invalid submission status")
	ErrNotFound      = errors.New("submission not found")
)

// ClientData holds the contact fields captured by a completed tool run.
// Email is mandatory; name and phone are optional.
type ClientData struct {
	Name  string
	Email string
	Phone string
}

// Submission is one completed run of a tool by a prospect, tied to the tool
// and the owning mentor. Submissions are never deleted.
type Submission struct {
	ID          string
	ToolID      string
	MentorID    string
	ClientData  ClientData
	Results     map[string]any // tool-specific key/value payload
	Status      string
	ClientID    string // set at promotion time, never cleared
	SubmittedAt time.Time
	InvitedAt   time.Time // zero until status becomes invited
	SignedUpAt  time.Time // zero until status becomes signed_up
}

// ValidStatus reports whether s is a known submission status.
func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusInvited, StatusSignedUp, StatusBecameClient:
		return true
	}
	return false
}

// Validate checks if the Submission has valid data.
// PRE: Submission struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must be present; tool and mentor ids must be set
func (s *Submission) Validate() error {
	if s.ToolID == "" {
		return errors.New("submission tool id cannot be empty")
	}
	if s.MentorID == "" {
		return errors.New("submission mentor id cannot be empty")
	}
	if strings.TrimSpace(s.ClientData.Email) == "" {
		return ErrEmailRequired
	}
	if !ValidStatus(s.Status) {
		return ErrInvalidStatus
	}
	if s.SubmittedAt.IsZero() {
		return errors.New("submitted_at must be set")
	}
	return nil
}

// ContactName returns the prospect's display name, falling back to the local
// part of the email when no name was captured.
// INVARIANT: ClientData fields are not mutated
func (c ClientData) ContactName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	if i := strings.Index(c.Email, "@"); i > 0 {
		return c.Email[:i]
	}
	return c.Email
}

// ApplyStatus sets the status and stamps the matching timestamp: InvitedAt on
// invited, SignedUpAt on signed_up. Transition legality is deliberately not
// checked; concurrent updates resolve as last write wins.
// PRE: status is a valid status string
// POST: Status updated, timestamp stamped when applicable
func (s *Submission) ApplyStatus(status string, now time.Time) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	s.Status = status
	switch status {
	case StatusInvited:
		s.InvitedAt = now
	case StatusSignedUp:
		s.SignedUpAt = now
	}
	return nil
}
