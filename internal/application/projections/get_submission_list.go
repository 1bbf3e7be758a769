package projections

import (
	"context"
	"sort"

	"hipat/internal/domain/submission"
	"hipat/internal/domain/tool"
)

// SubmissionListStore defines the submission store interface needed by the
// submission list projection.
type SubmissionListStore interface {
	ListByMentor(ctx context.Context, mentorID string) ([]submission.Submission, error)
}

// SubmissionToolStore defines the tool store interface needed to label
// submissions.
type SubmissionToolStore interface {
	List(ctx context.Context) ([]tool.Tool, error)
}

// GetSubmissionListQuery carries input for the submission list projection.
type GetSubmissionListQuery struct {
	MentorID string
	Status   string // optional: filter by status
	ToolID   string // optional: filter by tool
}

// SubmissionRow is one submission as the inbox shows it.
type SubmissionRow struct {
	Submission  submission.Submission
	ToolName    string
	ContactName string // name, or email local part when blank
}

// GetSubmissionListDeps holds dependencies for the submission list projection.
type GetSubmissionListDeps struct {
	SubmissionStore SubmissionListStore
	ToolStore       SubmissionToolStore
}

// QueryGetSubmissionList returns a mentor's submissions, newest first.
// PRE: query.MentorID is non-empty
// POST: Returns matching submissions sorted by SubmittedAt descending
func QueryGetSubmissionList(ctx context.Context, query GetSubmissionListQuery, deps GetSubmissionListDeps) ([]SubmissionRow, error) {
	subs, err := deps.SubmissionStore.ListByMentor(ctx, query.MentorID)
	if err != nil {
		return nil, err
	}

	toolNames := make(map[string]string)
	if deps.ToolStore != nil {
		tools, err := deps.ToolStore.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range tools {
			toolNames[t.ID] = t.Name
		}
	}

	var rows []SubmissionRow
	for _, s := range subs {
		if query.Status != "" && s.Status != query.Status {
			continue
		}
		if query.ToolID != "" && s.ToolID != query.ToolID {
			continue
		}
		rows = append(rows, SubmissionRow{
			Submission:  s,
			ToolName:    toolNames[s.ToolID],
			ContactName: s.ClientData.ContactName(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Submission.SubmittedAt.After(rows[j].Submission.SubmittedAt)
	})
	return rows, nil
}
