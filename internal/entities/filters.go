package entities

import (
	"time"

	"github.com/Patryk27/janet/internal/gitlab"
)

// Filters are AND-combined: nil fields match everything.

// UserFilter narrows FindUsers.
type UserFilter struct {
	ID    *UserID
	ExtID *gitlab.UserID
}

// ProjectFilter narrows FindProjects.
type ProjectFilter struct {
	ID    *ProjectID
	ExtID *gitlab.ProjectID
}

// MergeRequestFilter narrows FindMergeRequests.
type MergeRequestFilter struct {
	ID           *MergeRequestID
	ExtIID       *gitlab.MergeRequestIID
	ExtProjectID *gitlab.ProjectID
}

// DependencyFilter narrows FindMergeRequestDependencies. Discussion ids are
// matched case-sensitively.
type DependencyFilter struct {
	ID              *DependencyID
	UserID          *UserID
	ExtDiscussionID *gitlab.DiscussionID
	SrcID           *MergeRequestID
	DstID           *MergeRequestID
}

// ReminderFilter narrows FindReminders. OverdueBy selects reminders with
// remind_at <= OverdueBy; results come back ordered by remind_at ascending.
type ReminderFilter struct {
	ID        *ReminderID
	OverdueBy *time.Time
}
