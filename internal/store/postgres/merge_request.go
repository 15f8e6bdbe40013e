package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
)

const createMergeRequestQuery = `
INSERT INTO merge_requests (id, project_id, ext_id, ext_iid, ext_state)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (ext_id) DO UPDATE SET ext_state = EXCLUDED.ext_state
RETURNING id
`

// CreateMergeRequest inserts a merge request row or, when the external id is
// already tracked, refreshes its state and returns the existing id.
func (p *Postgres) CreateMergeRequest(ctx context.Context, m entities.NewMergeRequest) (entities.MergeRequestID, error) {
	var id entities.MergeRequestID
	err := p.db.QueryRow(
		ctx,
		createMergeRequestQuery,
		entities.NewID[entities.MergeRequest](),
		m.ProjectID,
		int64(m.ExtID),
		int64(m.ExtIID),
		m.ExtState,
	).Scan(&id)
	if err != nil {
		p.log.Errorw("failed to create merge request", "error", err, "ext_id", m.ExtID)
		return entities.MergeRequestID{}, fmt.Errorf("create merge request: %w", err)
	}

	return id, nil
}

// FindMergeRequests returns merge requests matching every set filter field.
func (p *Postgres) FindMergeRequests(ctx context.Context, filter entities.MergeRequestFilter) ([]entities.MergeRequest, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`
SELECT mr.id, mr.project_id, mr.ext_id, mr.ext_iid, mr.ext_state, mr.created_at
FROM merge_requests mr
JOIN projects p ON p.id = mr.project_id
WHERE 1=1`)

	if filter.ID != nil {
		args = append(args, *filter.ID)
		fmt.Fprintf(&query, " AND mr.id = $%d", len(args))
	}
	if filter.ExtIID != nil {
		args = append(args, int64(*filter.ExtIID))
		fmt.Fprintf(&query, " AND mr.ext_iid = $%d", len(args))
	}
	if filter.ExtProjectID != nil {
		args = append(args, int64(*filter.ExtProjectID))
		fmt.Fprintf(&query, " AND p.ext_id = $%d", len(args))
	}

	rows, err := p.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find merge requests: %w", err)
	}
	defer rows.Close()

	mrs := make([]entities.MergeRequest, 0)
	for rows.Next() {
		var (
			mr     entities.MergeRequest
			extID  int64
			extIID int64
		)
		if err := rows.Scan(&mr.ID, &mr.ProjectID, &extID, &extIID, &mr.ExtState, &mr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merge request: %w", err)
		}
		mr.ExtID = gitlab.MergeRequestID(extID)
		mr.ExtIID = gitlab.MergeRequestIID(extIID)
		mrs = append(mrs, mr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merge requests: %w", err)
	}

	return mrs, nil
}
