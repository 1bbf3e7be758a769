package projections

import (
	"context"
	"time"

	"hipat/internal/domain/client"
	"hipat/internal/domain/session"
	"hipat/internal/domain/submission"
)

// MetricsClientStore defines the client store interface needed by the
// metrics projection.
type MetricsClientStore interface {
	CountByStatus(ctx context.Context, mentorID string) (map[string]int, error)
}

// MetricsSubmissionStore defines the submission store interface needed by
// the metrics projection.
type MetricsSubmissionStore interface {
	CountByStatus(ctx context.Context, mentorID string) (map[string]int, error)
}

// MetricsSessionStore defines the session store interface needed by the
// metrics projection.
type MetricsSessionStore interface {
	ListByMentorBetween(ctx context.Context, mentorID string, fromDate, toDate string) ([]session.Session, error)
}

// DashboardMetricsResult carries the headline numbers for the mentor
// dashboard.
type DashboardMetricsResult struct {
	ActiveClients    int
	Prospects        int
	TotalSubmissions int
	NewSubmissions   int // status submitted, awaiting action
	InvitesSent      int
	ConversionRate   float64 // became_client / total submissions
	SessionsThisWeek int
}

// GetDashboardMetricsDeps holds dependencies for the metrics projection.
type GetDashboardMetricsDeps struct {
	ClientStore     MetricsClientStore
	SubmissionStore MetricsSubmissionStore
	SessionStore    MetricsSessionStore // optional: nil skips the session count
}

// QueryGetDashboardMetrics aggregates roster, submission and schedule counts
// for a mentor.
// PRE: mentorID is non-empty
// POST: ConversionRate is 0 when there are no submissions
func QueryGetDashboardMetrics(ctx context.Context, mentorID string, deps GetDashboardMetricsDeps, now time.Time) (DashboardMetricsResult, error) {
	var result DashboardMetricsResult

	clientCounts, err := deps.ClientStore.CountByStatus(ctx, mentorID)
	if err != nil {
		return result, err
	}
	result.ActiveClients = clientCounts[client.StatusActive]
	result.Prospects = clientCounts[client.StatusProspect]

	subCounts, err := deps.SubmissionStore.CountByStatus(ctx, mentorID)
	if err != nil {
		return result, err
	}
	for _, n := range subCounts {
		result.TotalSubmissions += n
	}
	result.NewSubmissions = subCounts[submission.StatusSubmitted]
	result.InvitesSent = subCounts[submission.StatusInvited]
	if result.TotalSubmissions > 0 {
		result.ConversionRate = float64(subCounts[submission.StatusBecameClient]) / float64(result.TotalSubmissions)
	}

	if deps.SessionStore != nil {
		from := now.Format("2006-01-02")
		to := now.AddDate(0, 0, upcomingWindowDays).Format("2006-01-02")
		sessions, err := deps.SessionStore.ListByMentorBetween(ctx, mentorID, from, to)
		if err != nil {
			return result, err
		}
		for _, s := range sessions {
			if s.Status == session.StatusBooked {
				result.SessionsThisWeek++
			}
		}
	}

	return result, nil
}
