package entities

import (
	"time"

	"github.com/Patryk27/janet/internal/gitlab"
)

// NewMergeRequest holds the fields of a new merge request row.
type NewMergeRequest struct {
	ProjectID ProjectID
	ExtID     gitlab.MergeRequestID
	ExtIID    gitlab.MergeRequestIID
	ExtState  string
}

// NewMergeRequestDependency holds the fields of a new dependency row.
type NewMergeRequestDependency struct {
	UserID          UserID
	ExtDiscussionID gitlab.DiscussionID
	SrcID           MergeRequestID
	DstID           MergeRequestID
}

// NewReminder holds the fields of a new reminder row.
type NewReminder struct {
	UserID          UserID
	MergeRequestID  MergeRequestID
	ExtDiscussionID gitlab.DiscussionID
	Message         *string
	RemindAt        time.Time
}
