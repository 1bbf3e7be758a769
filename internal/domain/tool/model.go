package tool

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Launch mode constants.
const (
	ModeLive        = "live"
	ModeSelfService = "self-service"
)

// Theme constants for the embedded tool frame.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Domain errors
var (
	ErrInvalidMode     = errors.New("mode must be 'live' or 'self-service'")
	ErrNotCustom       = errors.New("system tools cannot be removed")
	ErrAlreadyActive   = errors.New("tool is already active")
	ErrAlreadyInactive = errors.New("tool is already inactive")
)

// Tool is a catalog entry for a third-party embedded assessment or calculator.
// System tools are seeded at startup and never hard-deleted; custom tools are
// added by a mentor.
type Tool struct {
	ID             string
	Name           string
	Icon           string
	Color          string
	IsActive       bool
	IsConfigured   bool
	IsCustom       bool
	LiveURL        string
	SelfServiceURL string
}

// Override holds a mentor's URL overrides for a single tool. An empty field
// means "use the catalog default".
type Override struct {
	MentorID       string
	ToolID         string
	LiveURL        string
	SelfServiceURL string
}

// ValidMode reports whether mode is one of the two launch modes.
func ValidMode(mode string) bool {
	return mode == ModeLive || mode == ModeSelfService
}

// ValidTheme reports whether theme is a supported frame theme.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// Validate checks if the Tool has valid data.
// PRE: Tool struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty; configured URLs must be http(s)
func (t *Tool) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tool name cannot be empty")
	}
	if len(t.Name) > MaxNameLength {
		return errors.New("tool name cannot exceed 100 characters")
	}
	if t.LiveURL != "" {
		if err := ValidateURL(t.LiveURL); err != nil {
			return err
		}
	}
	if t.SelfServiceURL != "" {
		if err := ValidateURL(t.SelfServiceURL); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveURL returns the base URL for the given mode, preferring the
// mentor's override when one is set. An unknown mode yields "".
// PRE: t is initialized; o may be nil
// POST: Returns the override URL, the catalog URL, or ""
func (t *Tool) EffectiveURL(mode string, o *Override) string {
	switch mode {
	case ModeLive:
		if o != nil && o.LiveURL != "" {
			return o.LiveURL
		}
		return t.LiveURL
	case ModeSelfService:
		if o != nil && o.SelfServiceURL != "" {
			return o.SelfServiceURL
		}
		return t.SelfServiceURL
	}
	return ""
}

// UsableIn reports whether the tool can be launched in the given mode, i.e.
// whether its effective URL is a non-empty http(s) URL.
// INVARIANT: Tool fields are not mutated
func (t *Tool) UsableIn(mode string, o *Override) bool {
	return ValidateURL(t.EffectiveURL(mode, o)) == nil
}

// Deactivate hides the tool from the mentor dashboard.
// PRE: Tool is currently active
// POST: IsActive is false
func (t *Tool) Deactivate() error {
	if !t.IsActive {
		return ErrAlreadyInactive
	}
	t.IsActive = false
	return nil
}

// Reactivate makes the tool visible again.
// PRE: Tool is currently inactive
// POST: IsActive is true
func (t *Tool) Reactivate() error {
	if t.IsActive {
		return ErrAlreadyActive
	}
	t.IsActive = true
	return nil
}
