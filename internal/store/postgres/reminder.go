package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
)

const createReminderQuery = `
INSERT INTO reminders (id, user_id, merge_request_id, ext_discussion_id, message, remind_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

const deleteReminderQuery = `
DELETE FROM reminders WHERE id = $1
`

// CreateReminder inserts a reminder row.
func (p *Postgres) CreateReminder(ctx context.Context, r entities.NewReminder) (entities.ReminderID, error) {
	var id entities.ReminderID
	err := p.db.QueryRow(
		ctx,
		createReminderQuery,
		entities.NewID[entities.Reminder](),
		r.UserID,
		r.MergeRequestID,
		string(r.ExtDiscussionID),
		r.Message,
		r.RemindAt,
	).Scan(&id)
	if err != nil {
		p.log.Errorw("failed to create reminder", "error", err, "user_id", r.UserID)
		return entities.ReminderID{}, fmt.Errorf("create reminder: %w", err)
	}

	return id, nil
}

// DeleteReminder removes a reminder row; removing an absent row is a no-op.
func (p *Postgres) DeleteReminder(ctx context.Context, id entities.ReminderID) error {
	if _, err := p.db.Exec(ctx, deleteReminderQuery, id); err != nil {
		p.log.Errorw("failed to delete reminder", "error", err, "id", id)
		return fmt.Errorf("delete reminder: %w", err)
	}

	return nil
}

// FindReminders returns reminders matching every set filter field, ordered by
// remind_at ascending.
func (p *Postgres) FindReminders(ctx context.Context, filter entities.ReminderFilter) ([]entities.Reminder, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`
SELECT id, user_id, merge_request_id, ext_discussion_id, message, remind_at, created_at
FROM reminders
WHERE 1=1`)

	if filter.ID != nil {
		args = append(args, *filter.ID)
		fmt.Fprintf(&query, " AND id = $%d", len(args))
	}
	if filter.OverdueBy != nil {
		args = append(args, *filter.OverdueBy)
		fmt.Fprintf(&query, " AND remind_at <= $%d", len(args))
	}
	query.WriteString(" ORDER BY remind_at ASC")

	rows, err := p.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]entities.Reminder, 0)
	for rows.Next() {
		var (
			r          entities.Reminder
			discussion string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.MergeRequestID, &discussion, &r.Message, &r.RemindAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		r.ExtDiscussionID = gitlab.DiscussionID(discussion)
		reminders = append(reminders, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}

	return reminders, nil
}
