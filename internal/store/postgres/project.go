package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
)

const createProjectQuery = `
INSERT INTO projects (id, ext_id)
VALUES ($1, $2)
ON CONFLICT (ext_id) DO UPDATE SET ext_id = EXCLUDED.ext_id
RETURNING id
`

// CreateProject inserts a project row or returns the id of the row already
// holding that external id.
func (p *Postgres) CreateProject(ctx context.Context, extID gitlab.ProjectID) (entities.ProjectID, error) {
	var id entities.ProjectID
	err := p.db.QueryRow(ctx, createProjectQuery, entities.NewID[entities.Project](), int64(extID)).Scan(&id)
	if err != nil {
		p.log.Errorw("failed to create project", "error", err, "ext_id", extID)
		return entities.ProjectID{}, fmt.Errorf("create project: %w", err)
	}

	return id, nil
}

// FindProjects returns projects matching every set filter field.
func (p *Postgres) FindProjects(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`SELECT id, ext_id, created_at FROM projects WHERE 1=1`)

	if filter.ID != nil {
		args = append(args, *filter.ID)
		fmt.Fprintf(&query, " AND id = $%d", len(args))
	}
	if filter.ExtID != nil {
		args = append(args, int64(*filter.ExtID))
		fmt.Fprintf(&query, " AND ext_id = $%d", len(args))
	}

	rows, err := p.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		var (
			project entities.Project
			extID   int64
		)
		if err := rows.Scan(&project.ID, &extID, &project.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		project.ExtID = gitlab.ProjectID(extID)
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}
