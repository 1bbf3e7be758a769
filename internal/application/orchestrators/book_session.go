package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"hipat/internal/domain/client"
	"hipat/internal/domain/session"
)

// SessionStore defines the session store interface needed for booking.
type SessionStore interface {
	GetByID(ctx context.Context, id string) (session.Session, error)
	Save(ctx context.Context, s session.Session) error
}

// BookingClientStore defines the roster lookup for client bookings.
type BookingClientStore interface {
	GetByID(ctx context.Context, id string) (client.Client, error)
}

// BookSessionInput carries a booking request from the dashboard or the
// public landing page. ClientID is set for roster bookings; landing-page
// prospects supply name and email directly.
type BookSessionInput struct {
	MentorID    string
	ClientID    string
	ClientName  string
	ClientEmail string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Notes       string
	Referral    string
}

// BookSessionDeps holds dependencies for BookSession.
type BookSessionDeps struct {
	SessionStore SessionStore
	ClientStore  BookingClientStore // optional: nil skips roster checks
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteBookSession records a coaching session.
// PRE: date and times are provided; a roster ClientID must exist and not be
// archived
// POST: Session saved with status booked
func ExecuteBookSession(ctx context.Context, input BookSessionInput, deps BookSessionDeps) (session.Session, error) {
	name := strings.TrimSpace(input.ClientName)
	email := strings.TrimSpace(input.ClientEmail)

	if input.ClientID != "" && deps.ClientStore != nil {
		c, err := deps.ClientStore.GetByID(ctx, input.ClientID)
		if err != nil {
			return session.Session{}, errors.New("client not found")
		}
		if c.IsArchived() {
			return session.Session{}, errors.New("archived clients cannot book sessions")
		}
		if name == "" {
			name = c.Name
		}
		if email == "" {
			email = c.Email
		}
	}
	if name == "" {
		return session.Session{}, errors.New("a name is required to book a session")
	}
	if !strings.Contains(email, "@") {
		return session.Session{}, errors.New("a valid email is required to book a session")
	}

	s := session.Session{
		ID:          deps.GenerateID(),
		MentorID:    input.MentorID,
		ClientID:    input.ClientID,
		ClientName:  name,
		ClientEmail: email,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      session.StatusBooked,
		Notes:       input.Notes,
		Referral:    input.Referral,
		CreatedAt:   deps.Now(),
	}
	if err := s.Validate(); err != nil {
		return session.Session{}, err
	}
	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return session.Session{}, err
	}

	slog.Info("session_booked", "session_id", s.ID, "mentor_id", s.MentorID, "date", s.Date, "referral", s.Referral)
	return s, nil
}

// CancelSessionDeps holds dependencies for CancelSession.
type CancelSessionDeps struct {
	SessionStore SessionStore
}

// ExecuteCancelSession cancels a booked session.
// PRE: sessionID refers to a booked session
// POST: Session status is cancelled
func ExecuteCancelSession(ctx context.Context, sessionID string, deps CancelSessionDeps) error {
	s, err := deps.SessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return errors.New("session not found")
	}
	if err := s.Cancel(); err != nil {
		return err
	}
	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return err
	}
	slog.Info("session_cancelled", "session_id", sessionID)
	return nil
}

// ExecuteCompleteSession marks a booked session completed.
// PRE: sessionID refers to a booked session
// POST: Session status is completed
func ExecuteCompleteSession(ctx context.Context, sessionID string, deps CancelSessionDeps) error {
	s, err := deps.SessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return errors.New("session not found")
	}
	if err := s.Complete(); err != nil {
		return err
	}
	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return err
	}
	slog.Info("session_completed", "session_id", sessionID)
	return nil
}
