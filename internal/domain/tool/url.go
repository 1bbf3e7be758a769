package tool

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Callback mechanism advertised to embedded tools via the launch URL.
const CallbackPostMessage = "postMessage"

// ErrSchemeNotAllowed is returned when a tool URL uses a scheme other than
// http or https (javascript:, file:, data: and friends are all rejected).
var ErrSchemeNotAllowed = errors.New("tool URL must use http or https")

// ErrEmptyURL is returned when a tool URL is empty or whitespace.
var ErrEmptyURL = errors.New("tool URL cannot be empty")

// BuildLaunchURL constructs the fully parameterized URL used to load a tool,
// appending mentorId, mentorName, mode, callback and theme query parameters.
//
// An empty, malformed, or non-http(s) base yields "" rather than an error:
// at construction time an unusable URL means "tool not configured", which the
// caller renders as a distinct state rather than a failure. Persistence-time
// validation goes through ValidateURL instead, which rejects explicitly.
// PRE: mode and theme are valid mode/theme strings
// POST: Returns the launch URL, or "" when base is unusable
func BuildLaunchURL(base, mentorID, mentorName, mode, theme string) string {
	if strings.TrimSpace(base) == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}

	q := u.Query()
	q.Set("mentorId", mentorID)
	q.Set("mentorName", mentorName)
	q.Set("mode", mode)
	q.Set("callback", CallbackPostMessage)
	q.Set("theme", theme)
	u.RawQuery = q.Encode()

	return u.String()
}

// ValidateURL checks a mentor-supplied tool URL before it is persisted.
// Unlike BuildLaunchURL it rejects with an explicit error: a broken display
// is recoverable but a stored bad URL is not.
// PRE: raw is the URL as typed by the mentor
// POST: Returns nil only for absolute http(s) URLs with a host
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid tool URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrSchemeNotAllowed
	}
	if u.Host == "" {
		return errors.New("tool URL must be absolute")
	}
	return nil
}

// Origin returns the scheme://host origin of a tool URL, used as the
// acceptance predicate for inbound frame messages. It is recomputed from the
// stored URL on every message, never cached.
// PRE: raw is the effective tool URL for the active mode
// POST: Returns the origin, or an error if raw is absent or unparseable
func Origin(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid tool URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrSchemeNotAllowed
	}
	return u.Scheme + "://" + u.Host, nil
}
