package client

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Status constants for a roster client.
const (
	StatusProspect = "prospect"
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Source constants describing how the client entered the roster.
const (
	SourceToolSubmission = "tool_submission"
	SourceDirect         = "direct"
)

// Domain errors
var (
	ErrAlreadyArchived = errors.New("client is already archived")
	ErrNotArchived     = errors.New("client is not archived")
)

// Client is a roster entry, exclusively owned by the mentor who created it.
type Client struct {
	ID        string
	MentorID  string
	Name      string
	Email     string
	Phone     string
	Source    string
	Status    string
	CreatedAt time.Time
}

// Validate checks if the Client has valid data.
// PRE: Client struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name cannot be empty")
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("client name cannot exceed 100 characters")
	}
	if !strings.Contains(c.Email, "@") {
		return errors.New("client email must be valid")
	}
	if c.MentorID == "" {
		return errors.New("client mentor id cannot be empty")
	}
	if c.Source != SourceToolSubmission && c.Source != SourceDirect {
		return errors.New("source must be 'tool_submission' or 'direct'")
	}
	if c.Status != StatusProspect && c.Status != StatusActive && c.Status != StatusArchived {
		return errors.New("status must be 'prospect', 'active', or 'archived'")
	}
	return nil
}

// IsArchived returns true if the client is archived.
// INVARIANT: Status field is not mutated
func (c *Client) IsArchived() bool {
	return c.Status == StatusArchived
}

// Archive removes the client from the active roster.
// PRE: Client is not already archived
// POST: Status is set to archived
func (c *Client) Archive() error {
	if c.Status == StatusArchived {
		return ErrAlreadyArchived
	}
	c.Status = StatusArchived
	return nil
}

// Restore brings an archived client back as active.
// PRE: Client is currently archived
// POST: Status is set to active
func (c *Client) Restore() error {
	if c.Status != StatusArchived {
		return ErrNotArchived
	}
	c.Status = StatusActive
	return nil
}
