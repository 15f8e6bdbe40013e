package entities

import "time"

// LogEntry is an audit record of a dispatched command or event.
type LogEntry struct {
	ID        int64
	Event     string
	Payload   string
	CreatedAt time.Time
}
