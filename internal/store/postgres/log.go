package postgres

import (
	"context"
	"fmt"
)

const createLogEntryQuery = `
INSERT INTO logs (event, payload) VALUES ($1, $2)
`

// CreateLogEntry appends an audit record.
func (p *Postgres) CreateLogEntry(ctx context.Context, event, payload string) error {
	if _, err := p.db.Exec(ctx, createLogEntryQuery, event, payload); err != nil {
		p.log.Errorw("failed to create log entry", "error", err, "event", event)
		return fmt.Errorf("create log entry: %w", err)
	}

	return nil
}
