package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
)

const createUserQuery = `
INSERT INTO users (id, ext_id)
VALUES ($1, $2)
ON CONFLICT (ext_id) DO UPDATE SET ext_id = EXCLUDED.ext_id
RETURNING id
`

// CreateUser inserts a user row or returns the id of the row already holding
// that external id.
func (p *Postgres) CreateUser(ctx context.Context, extID gitlab.UserID) (entities.UserID, error) {
	var id entities.UserID
	err := p.db.QueryRow(ctx, createUserQuery, entities.NewID[entities.User](), int64(extID)).Scan(&id)
	if err != nil {
		p.log.Errorw("failed to create user", "error", err, "ext_id", extID)
		return entities.UserID{}, fmt.Errorf("create user: %w", err)
	}

	return id, nil
}

// FindUsers returns users matching every set filter field.
func (p *Postgres) FindUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`SELECT id, ext_id, created_at FROM users WHERE 1=1`)

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
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var (
			u     entities.User
			extID int64
		)
		if err := rows.Scan(&u.ID, &extID, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.ExtID = gitlab.UserID(extID)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}
