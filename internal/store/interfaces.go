// Package store contains persistence interfaces for the bot's state.
package store

import (
	"context"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user rows. CreateUser is idempotent on the external
// id: a second call returns the id of the existing row.
type UserInterface interface {
	CreateUser(ctx context.Context, extID gitlab.UserID) (entities.UserID, error)
	FindUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error)
}

// ProjectInterface exposes project rows. CreateProject is idempotent on the
// external id.
type ProjectInterface interface {
	CreateProject(ctx context.Context, extID gitlab.ProjectID) (entities.ProjectID, error)
	FindProjects(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, error)
}

// MergeRequestInterface exposes merge request rows. CreateMergeRequest is
// idempotent on the external id.
type MergeRequestInterface interface {
	CreateMergeRequest(ctx context.Context, p entities.NewMergeRequest) (entities.MergeRequestID, error)
	FindMergeRequests(ctx context.Context, filter entities.MergeRequestFilter) ([]entities.MergeRequest, error)
}

// DependencyInterface exposes dependency rows. CreateMergeRequestDependency
// does NOT deduplicate; callers check for an existing row first.
type DependencyInterface interface {
	CreateMergeRequestDependency(ctx context.Context, p entities.NewMergeRequestDependency) (entities.DependencyID, error)
	DeleteMergeRequestDependency(ctx context.Context, id entities.DependencyID) error
	FindMergeRequestDependencies(ctx context.Context, filter entities.DependencyFilter) ([]entities.MergeRequestDependency, error)
}

// ReminderInterface exposes reminder rows.
type ReminderInterface interface {
	CreateReminder(ctx context.Context, p entities.NewReminder) (entities.ReminderID, error)
	DeleteReminder(ctx context.Context, id entities.ReminderID) error
	FindReminders(ctx context.Context, filter entities.ReminderFilter) ([]entities.Reminder, error)
}

// LogInterface exposes the append-only audit log.
type LogInterface interface {
	CreateLogEntry(ctx context.Context, event, payload string) error
}
