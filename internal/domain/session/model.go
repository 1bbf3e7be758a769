package session

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status constants for a coaching session.
const (
	StatusBooked    = "booked"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Domain errors
var (
	ErrEmptyMentorID   = errors.New("session mentor ID cannot be empty")
	ErrEmptyDate       = errors.New("session date cannot be empty")
	ErrEmptyStartTime  = errors.New("start time cannot be empty")
	ErrEmptyEndTime    = errors.New("end time cannot be empty")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrAlreadyFinished = errors.New("session is already completed or cancelled")
)

// Session is a single coaching appointment between a mentor and a client or
// prospect. Prospect bookings from the landing page have no ClientID yet.
type Session struct {
	ID          string
	MentorID    string
	ClientID    string // optional: empty for prospect bookings
	ClientName  string
	ClientEmail string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Status      string
	Notes       string
	Referral    string // referral tag captured from the landing page link
	CreatedAt   time.Time
}

// Validate checks if the Session has valid data.
// PRE: Session struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Session) Validate() error {
	if strings.TrimSpace(s.MentorID) == "" {
		return ErrEmptyMentorID
	}
	if strings.TrimSpace(s.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return fmt.Errorf("invalid session date %q: %w", s.Date, err)
	}
	if strings.TrimSpace(s.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if strings.TrimSpace(s.EndTime) == "" {
		return ErrEmptyEndTime
	}
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", s.StartTime, err)
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time %q: %w", s.EndTime, err)
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	if s.Status != StatusBooked && s.Status != StatusCompleted && s.Status != StatusCancelled {
		return errors.New("status must be 'booked', 'completed', or 'cancelled'")
	}
	return nil
}

// Cancel marks a booked session cancelled.
// PRE: Session is currently booked
// POST: Status is set to cancelled
func (s *Session) Cancel() error {
	if s.Status != StatusBooked {
		return ErrAlreadyFinished
	}
	s.Status = StatusCancelled
	return nil
}

// Complete marks a booked session completed.
// PRE: Session is currently booked
// POST: Status is set to completed
func (s *Session) Complete() error {
	if s.Status != StatusBooked {
		return ErrAlreadyFinished
	}
	s.Status = StatusCompleted
	return nil
}

// DayLabel returns the human label for the session date relative to now:
// "Today", "Tomorrow", or the weekday name.
// PRE: Date is in YYYY-MM-DD format
// POST: Returns a display label; malformed dates fall back to the raw date
func (s *Session) DayLabel(now time.Time) string {
	d, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return s.Date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	switch int(target.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return target.Weekday().String()
}
