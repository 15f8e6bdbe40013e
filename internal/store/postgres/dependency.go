package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
)

const createDependencyQuery = `
INSERT INTO merge_request_dependencies (id, user_id, ext_discussion_id, src_merge_request_id, dst_merge_request_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

const deleteDependencyQuery = `
DELETE FROM merge_request_dependencies WHERE id = $1
`

// CreateMergeRequestDependency inserts a dependency row. Callers check for an
// existing row first; the store does not deduplicate.
func (p *Postgres) CreateMergeRequestDependency(ctx context.Context, d entities.NewMergeRequestDependency) (entities.DependencyID, error) {
	var id entities.DependencyID
	err := p.db.QueryRow(
		ctx,
		createDependencyQuery,
		entities.NewID[entities.MergeRequestDependency](),
		d.UserID,
		string(d.ExtDiscussionID),
		d.SrcID,
		d.DstID,
	).Scan(&id)
	if err != nil {
		p.log.Errorw("failed to create dependency", "error", err, "user_id", d.UserID)
		return entities.DependencyID{}, fmt.Errorf("create merge request dependency: %w", err)
	}

	return id, nil
}

// DeleteMergeRequestDependency removes a dependency row; removing an absent
// row is a no-op.
func (p *Postgres) DeleteMergeRequestDependency(ctx context.Context, id entities.DependencyID) error {
	if _, err := p.db.Exec(ctx, deleteDependencyQuery, id); err != nil {
		p.log.Errorw("failed to delete dependency", "error", err, "id", id)
		return fmt.Errorf("delete merge request dependency: %w", err)
	}

	return nil
}

// FindMergeRequestDependencies returns dependencies matching every set filter
// field. Discussion ids compare case-sensitively (TEXT equality).
func (p *Postgres) FindMergeRequestDependencies(ctx context.Context, filter entities.DependencyFilter) ([]entities.MergeRequestDependency, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`
SELECT id, user_id, ext_discussion_id, src_merge_request_id, dst_merge_request_id, created_at
FROM merge_request_dependencies
WHERE 1=1`)

	if filter.ID != nil {
		args = append(args, *filter.ID)
		fmt.Fprintf(&query, " AND id = $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		fmt.Fprintf(&query, " AND user_id = $%d", len(args))
	}
	if filter.ExtDiscussionID != nil {
		args = append(args, string(*filter.ExtDiscussionID))
		fmt.Fprintf(&query, " AND ext_discussion_id = $%d", len(args))
	}
	if filter.SrcID != nil {
		args = append(args, *filter.SrcID)
		fmt.Fprintf(&query, " AND src_merge_request_id = $%d", len(args))
	}
	if filter.DstID != nil {
		args = append(args, *filter.DstID)
		fmt.Fprintf(&query, " AND dst_merge_request_id = $%d", len(args))
	}

	rows, err := p.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find merge request dependencies: %w", err)
	}
	defer rows.Close()

	deps := make([]entities.MergeRequestDependency, 0)
	for rows.Next() {
		var (
			dep        entities.MergeRequestDependency
			discussion string
		)
		if err := rows.Scan(&dep.ID, &dep.UserID, &discussion, &dep.SrcID, &dep.DstID, &dep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merge request dependency: %w", err)
		}
		dep.ExtDiscussionID = gitlab.DiscussionID(discussion)
		deps = append(deps, dep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merge request dependencies: %w", err)
	}

	return deps, nil
}
