// Package entities contains core business entities.
package entities

import (
	"time"

	"github.com/Patryk27/janet/internal/gitlab"
)

// User mirrors a GitLab user the bot has interacted with.
type User struct {
	ID        UserID
	ExtID     gitlab.UserID
	CreatedAt time.Time
}
