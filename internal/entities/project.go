package entities

import (
	"time"

	"github.com/Patryk27/janet/internal/gitlab"
)

// Project mirrors a GitLab project the bot tracks merge requests in.
type Project struct {
	ID        ProjectID
	ExtID     gitlab.ProjectID
	CreatedAt time.Time
}
