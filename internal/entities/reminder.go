package entities

import (
	"time"

	"github.com/Patryk27/janet/internal/gitlab"
)

// Reminder is a scheduled ping on a merge request discussion.
type Reminder struct {
	ID              ReminderID
	UserID          UserID
	MergeRequestID  MergeRequestID
	ExtDiscussionID gitlab.DiscussionID
	Message         *string
	RemindAt        time.Time
	CreatedAt       time.Time
}
