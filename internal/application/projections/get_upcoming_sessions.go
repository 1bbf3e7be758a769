package projections

import (
	"context"
	"time"

	"hipat/internal/domain/session"
)

// UpcomingSessionStore defines the session store interface needed by the
// upcoming sessions projection.
type UpcomingSessionStore interface {
	ListByMentorBetween(ctx context.Context, mentorID string, fromDate, toDate string) ([]session.Session, error)
}

// SessionGroup is one day of upcoming sessions with its display label.
type SessionGroup struct {
	Date     string // YYYY-MM-DD
	DayLabel string // "Today", "Tomorrow", or a weekday name
	Sessions []session.Session
}

// GetUpcomingSessionsDeps holds dependencies for the upcoming sessions
// projection.
type GetUpcomingSessionsDeps struct {
	SessionStore UpcomingSessionStore
}

// upcomingWindowDays is how far ahead the schedule view looks.
const upcomingWindowDays = 7

// QueryGetUpcomingSessions returns booked sessions for the next week,
// grouped by day in order.
// PRE: mentorID is non-empty
// POST: Returns day groups in date order; cancelled sessions excluded
func QueryGetUpcomingSessions(ctx context.Context, mentorID string, deps GetUpcomingSessionsDeps, now time.Time) ([]SessionGroup, error) {
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, upcomingWindowDays).Format("2006-01-02")

	sessions, err := deps.SessionStore.ListByMentorBetween(ctx, mentorID, from, to)
	if err != nil {
		return nil, err
	}

	var groups []SessionGroup
	byDate := make(map[string]int)
	for _, s := range sessions {
		if s.Status == session.StatusCancelled {
			continue
		}
		idx, ok := byDate[s.Date]
		if !ok {
			groups = append(groups, SessionGroup{
				Date:     s.Date,
				DayLabel: s.DayLabel(now),
			})
			idx = len(groups) - 1
			byDate[s.Date] = idx
		}
		groups[idx].Sessions = append(groups[idx].Sessions, s)
	}

	// The store returns date then start-time order, so groups arrive in
	// date order already.
	return groups, nil
}
