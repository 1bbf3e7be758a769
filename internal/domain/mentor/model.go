package mentor

import (
	"errors"
	"strings"
)

// Theme constants for the mentor's dashboard and embedded tools.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Mentor is the coaching professional using the dashboard. Mentors own their
// clients, tool configuration, submissions and sessions.
type Mentor struct {
	ID           string
	Name         string
	Email        string
	BusinessName string
	Theme        string
}

// Validate checks if the Mentor has valid data.
// PRE: Mentor struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (m *Mentor) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("mentor name cannot be empty")
	}
	if !strings.Contains(m.Email, "@") {
		return errors.New("mentor email must be valid")
	}
	if m.Theme != ThemeLight && m.Theme != ThemeDark {
		return errors.New("theme must be 'light' or 'dark'")
	}
	return nil
}

// DisplayName returns the business name when set, otherwise the mentor's own
// name. Used for the mentorName launch parameter and invite emails.
func (m *Mentor) DisplayName() string {
	if strings.TrimSpace(m.BusinessName) != "" {
		return m.BusinessName
	}
	return m.Name
}
