package entities

import (
	"time"

	"github.com/Patryk27/janet/internal/gitlab"
)

// MergeRequest mirrors a GitLab merge request the bot tracks.
type MergeRequest struct {
	ID        MergeRequestID
	ProjectID ProjectID
	ExtID     gitlab.MergeRequestID
	ExtIID    gitlab.MergeRequestIID
	ExtState  string
	CreatedAt time.Time
}

// MergeRequestDependency records that a user wants to be notified on src's
// discussion when dst changes state.
type MergeRequestDependency struct {
	ID              DependencyID
	UserID          UserID
	ExtDiscussionID gitlab.DiscussionID
	SrcID           MergeRequestID
	DstID           MergeRequestID
	CreatedAt       time.Time
}
