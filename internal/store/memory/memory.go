// Package memory implements the store in process memory. It backs unit tests
// and local runs where a database would be overkill.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"

	"go.uber.org/zap"
)

// Memory keeps all rows in slices guarded by one mutex, mirroring the
// single-connection serialization of the postgres backend.
type Memory struct {
	log *zap.SugaredLogger

	mu            sync.Mutex
	users         []entities.User
	projects      []entities.Project
	mergeRequests []entities.MergeRequest
	dependencies  []entities.MergeRequestDependency
	reminders     []entities.Reminder
	logs          []entities.LogEntry
}

// New creates an empty in-memory store.
func New(log *zap.SugaredLogger) *Memory {
	return &Memory{log: log.Named("store.memory")}
}

// OnStart implements the lifecycle hook; nothing to do.
func (m *Memory) OnStart(_ context.Context) error { return nil }

// OnStop implements the lifecycle hook; nothing to do.
func (m *Memory) OnStop(_ context.Context) error { return nil }

// CreateUser returns the existing row's id when the external id is known.
func (m *Memory) CreateUser(_ context.Context, extID gitlab.UserID) (entities.UserID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ExtID == extID {
			return u.ID, nil
		}
	}

	user := entities.User{
		ID:        entities.NewID[entities.User](),
		ExtID:     extID,
		CreatedAt: time.Now().UTC(),
	}
	m.users = append(m.users, user)

	return user.ID, nil
}

func (m *Memory) FindUsers(_ context.Context, filter entities.UserFilter) ([]entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := make([]entities.User, 0)
	for _, u := range m.users {
		if filter.ID != nil && *filter.ID != u.ID {
			continue
		}
		if filter.ExtID != nil && *filter.ExtID != u.ExtID {
			continue
		}
		found = append(found, u)
	}

	return found, nil
}

// CreateProject returns the existing row's id when the external id is known.
func (m *Memory) CreateProject(_ context.Context, extID gitlab.ProjectID) (entities.ProjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.projects {
		if p.ExtID == extID {
			return p.ID, nil
		}
	}

	project := entities.Project{
		ID:        entities.NewID[entities.Project](),
		ExtID:     extID,
		CreatedAt: time.Now().UTC(),
	}
	m.projects = append(m.projects, project)

	return project.ID, nil
}

func (m *Memory) FindProjects(_ context.Context, filter entities.ProjectFilter) ([]entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := make([]entities.Project, 0)
	for _, p := range m.projects {
		if filter.ID != nil && *filter.ID != p.ID {
			continue
		}
		if filter.ExtID != nil && *filter.ExtID != p.ExtID {
			continue
		}
		found = append(found, p)
	}

	return found, nil
}

// CreateMergeRequest returns the existing row's id when the external id is
// known.
func (m *Memory) CreateMergeRequest(_ context.Context, p entities.NewMergeRequest) (entities.MergeRequestID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mr := range m.mergeRequests {
		if mr.ExtID == p.ExtID {
			return mr.ID, nil
		}
	}

	mr := entities.MergeRequest{
		ID:        entities.NewID[entities.MergeRequest](),
		ProjectID: p.ProjectID,
		ExtID:     p.ExtID,
		ExtIID:    p.ExtIID,
		ExtState:  p.ExtState,
		CreatedAt: time.Now().UTC(),
	}
	m.mergeRequests = append(m.mergeRequests, mr)

	return mr.ID, nil
}

func (m *Memory) FindMergeRequests(_ context.Context, filter entities.MergeRequestFilter) ([]entities.MergeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	projectsByID := make(map[entities.ProjectID]entities.Project, len(m.projects))
	for _, p := range m.projects {
		projectsByID[p.ID] = p
	}

	found := make([]entities.MergeRequest, 0)
	for _, mr := range m.mergeRequests {
		if filter.ID != nil && *filter.ID != mr.ID {
			continue
		}
		if filter.ExtIID != nil && *filter.ExtIID != mr.ExtIID {
			continue
		}
		if filter.ExtProjectID != nil && projectsByID[mr.ProjectID].ExtID != *filter.ExtProjectID {
			continue
		}
		found = append(found, mr)
	}

	return found, nil
}

func (m *Memory) CreateMergeRequestDependency(_ context.Context, p entities.NewMergeRequestDependency) (entities.DependencyID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dep := entities.MergeRequestDependency{
		ID:              entities.NewID[entities.MergeRequestDependency](),
		UserID:          p.UserID,
		ExtDiscussionID: p.ExtDiscussionID,
		SrcID:           p.SrcID,
		DstID:           p.DstID,
		CreatedAt:       time.Now().UTC(),
	}
	m.dependencies = append(m.dependencies, dep)

	return dep.ID, nil
}

func (m *Memory) DeleteMergeRequestDependency(_ context.Context, id entities.DependencyID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, dep := range m.dependencies {
		if dep.ID == id {
			m.dependencies = append(m.dependencies[:i], m.dependencies[i+1:]...)
			return nil
		}
	}

	return nil
}

func (m *Memory) FindMergeRequestDependencies(_ context.Context, filter entities.DependencyFilter) ([]entities.MergeRequestDependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := make([]entities.MergeRequestDependency, 0)
	for _, dep := range m.dependencies {
		if filter.ID != nil && *filter.ID != dep.ID {
			continue
		}
		if filter.UserID != nil && *filter.UserID != dep.UserID {
			continue
		}
		if filter.ExtDiscussionID != nil && *filter.ExtDiscussionID != dep.ExtDiscussionID {
			continue
		}
		if filter.SrcID != nil && *filter.SrcID != dep.SrcID {
			continue
		}
		if filter.DstID != nil && *filter.DstID != dep.DstID {
			continue
		}
		found = append(found, dep)
	}

	return found, nil
}

func (m *Memory) CreateReminder(_ context.Context, p entities.NewReminder) (entities.ReminderID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reminder := entities.Reminder{
		ID:              entities.NewID[entities.Reminder](),
		UserID:          p.UserID,
		MergeRequestID:  p.MergeRequestID,
		ExtDiscussionID: p.ExtDiscussionID,
		Message:         p.Message,
		RemindAt:        p.RemindAt,
		CreatedAt:       time.Now().UTC(),
	}
	m.reminders = append(m.reminders, reminder)

	return reminder.ID, nil
}

func (m *Memory) DeleteReminder(_ context.Context, id entities.ReminderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.reminders {
		if r.ID == id {
			m.reminders = append(m.reminders[:i], m.reminders[i+1:]...)
			return nil
		}
	}

	return nil
}

func (m *Memory) FindReminders(_ context.Context, filter entities.ReminderFilter) ([]entities.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := make([]entities.Reminder, 0)
	for _, r := range m.reminders {
		if filter.ID != nil && *filter.ID != r.ID {
			continue
		}
		if filter.OverdueBy != nil && r.RemindAt.After(*filter.OverdueBy) {
			continue
		}
		found = append(found, r)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].RemindAt.Before(found[j].RemindAt)
	})

	return found, nil
}

func (m *Memory) CreateLogEntry(_ context.Context, event, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs = append(m.logs, entities.LogEntry{
		ID:        int64(len(m.logs) + 1),
		Event:     event,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})

	return nil
}
