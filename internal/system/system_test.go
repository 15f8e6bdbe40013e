package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Patryk27/janet/config"
	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/Patryk27/janet/internal/grammar"
	"github.com/Patryk27/janet/internal/store/memory"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gitlabMock struct{ mock.Mock }

var _ gitlab.API = (*gitlabMock)(nil)

func (m *gitlabMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *gitlabMock) User(ctx context.Context, id gitlab.UserID) (gitlab.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(gitlab.User), args.Error(1)
}

func (m *gitlabMock) Project(ctx context.Context, idOrPath string) (gitlab.Project, error) {
	args := m.Called(ctx, idOrPath)
	return args.Get(0).(gitlab.Project), args.Error(1)
}

func (m *gitlabMock) Namespace(ctx context.Context, idOrPath string) (gitlab.Namespace, error) {
	args := m.Called(ctx, idOrPath)
	return args.Get(0).(gitlab.Namespace), args.Error(1)
}

func (m *gitlabMock) MergeRequest(ctx context.Context, project gitlab.ProjectID, iid gitlab.MergeRequestIID) (gitlab.MergeRequest, error) {
	args := m.Called(ctx, project, iid)
	return args.Get(0).(gitlab.MergeRequest), args.Error(1)
}

func (m *gitlabMock) MergeRequests(ctx context.Context) ([]gitlab.MergeRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gitlab.MergeRequest), args.Error(1)
}

func (m *gitlabMock) CreateMergeRequestNote(ctx context.Context, project gitlab.ProjectID, mergeRequest gitlab.MergeRequestIID, discussion gitlab.DiscussionID, note string) error {
	return m.Called(ctx, project, mergeRequest, discussion, note).Error(0)
}

// newTestSystem runs a sync-mode system over an in-memory store, so Process
// calls return only after their handler finished.
func newTestSystem(t *testing.T, gl gitlab.API) (*System, *memory.Memory) {
	t.Helper()

	st := memory.New(zap.NewNop().Sugar())
	sys := New(
		config.SystemConfig{Sync: true, ReminderInterval: time.Hour},
		zap.NewNop().Sugar(),
		gl,
		st,
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = sys.Run(ctx) }()

	return sys, st
}

func mrPtr(project gitlab.ProjectID, iid gitlab.MergeRequestIID) grammar.MergeRequestPtr {
	return grammar.MergeRequestPtr{
		Project: &grammar.ProjectPtr{ID: &project},
		IID:     iid,
	}
}

func cmdContext() grammar.CommandContext {
	return grammar.CommandContext{
		User:         100,
		MergeRequest: mrPtr(1, 2),
		Discussion:   "cafebabe",
	}
}

func mockProjectAndMergeRequests(gl *gitlabMock) {
	gl.On("User", mock.Anything, gitlab.UserID(100)).
		Return(gitlab.User{ID: 100, Username: "someone"}, nil)
	gl.On("Project", mock.Anything, "1").
		Return(gitlab.Project{ID: 1, Namespace: gitlab.Namespace{ID: 1, Name: "alpha", FullPath: "alpha"}}, nil)
	gl.On("MergeRequest", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2)).
		Return(gitlab.MergeRequest{ID: 10, IID: 2, ProjectID: 1, State: "opened", WebURL: "https://gitlab.com/alpha/one/-/merge_requests/2"}, nil)
}

func TestSystem_Hi(t *testing.T) {
	gl := &gitlabMock{}
	gl.On("User", mock.Anything, gitlab.UserID(100)).
		Return(gitlab.User{ID: 100, Username: "someone"}, nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "Hi, @someone!").
		Return(nil)

	sys, _ := newTestSystem(t, gl)

	err := sys.ProcessCommand(context.Background(), grammar.Command{
		Context: cmdContext(),
		Cmd:     grammar.Hi{},
	})
	require.NoError(t, err)

	gl.AssertExpectations(t)
}

func TestSystem_AddDependency(t *testing.T) {
	gl := &gitlabMock{}
	mockProjectAndMergeRequests(gl)
	gl.On("MergeRequest", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(3)).
		Return(gitlab.MergeRequest{ID: 11, IID: 3, ProjectID: 1, State: "opened", WebURL: "https://gitlab.com/alpha/one/-/merge_requests/3"}, nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "@someone :+1:").
		Return(nil)

	sys, st := newTestSystem(t, gl)

	cmd := grammar.Command{
		Context: cmdContext(),
		Cmd: grammar.ManageDependency{
			Action:     grammar.ActionAdd,
			Dependency: grammar.MergeRequestPtr{IID: 3},
		},
	}

	require.NoError(t, sys.ProcessCommand(context.Background(), cmd))

	deps, err := st.FindMergeRequestDependencies(context.Background(), entities.DependencyFilter{})
	require.NoError(t, err)
	require.Len(t, deps, 1)

	// Posting the same comment twice must not create a second row.
	require.NoError(t, sys.ProcessCommand(context.Background(), cmd))

	deps, err = st.FindMergeRequestDependencies(context.Background(), entities.DependencyFilter{})
	require.NoError(t, err)
	require.Len(t, deps, 1)

	gl.AssertExpectations(t)
}

func TestSystem_AddDependency_MergeRequestNotFound(t *testing.T) {
	gl := &gitlabMock{}
	mockProjectAndMergeRequests(gl)
	gl.On("MergeRequest", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(3)).
		Return(gitlab.MergeRequest{}, errors.New("404 Not Found"))
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"),
		"@someone sorry, I couldn't find this merge request - could you please ensure it exists and re-create your comment?").
		Return(nil)

	sys, st := newTestSystem(t, gl)

	err := sys.ProcessCommand(context.Background(), grammar.Command{
		Context: cmdContext(),
		Cmd: grammar.ManageDependency{
			Action:     grammar.ActionAdd,
			Dependency: grammar.MergeRequestPtr{IID: 3},
		},
	})
	require.NoError(t, err)

	deps, err := st.FindMergeRequestDependencies(context.Background(), entities.DependencyFilter{})
	require.NoError(t, err)
	require.Empty(t, deps)

	gl.AssertExpectations(t)
}

func TestSystem_RemoveDependency(t *testing.T) {
	gl := &gitlabMock{}
	mockProjectAndMergeRequests(gl)
	gl.On("MergeRequest", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(3)).
		Return(gitlab.MergeRequest{ID: 11, IID: 3, ProjectID: 1, State: "opened", WebURL: "https://gitlab.com/alpha/one/-/merge_requests/3"}, nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "@someone :+1:").
		Return(nil)

	sys, st := newTestSystem(t, gl)

	ctx := context.Background()

	require.NoError(t, sys.ProcessCommand(ctx, grammar.Command{
		Context: cmdContext(),
		Cmd: grammar.ManageDependency{
			Action:     grammar.ActionAdd,
			Dependency: grammar.MergeRequestPtr{IID: 3},
		},
	}))

	remove := grammar.Command{
		Context: cmdContext(),
		Cmd: grammar.ManageDependency{
			Action:     grammar.ActionRemove,
			Dependency: grammar.MergeRequestPtr{IID: 3},
		},
	}

	require.NoError(t, sys.ProcessCommand(ctx, remove))

	deps, err := st.FindMergeRequestDependencies(ctx, entities.DependencyFilter{})
	require.NoError(t, err)
	require.Empty(t, deps)

	// Removing again stays a silent no-op.
	require.NoError(t, sys.ProcessCommand(ctx, remove))

	gl.AssertExpectations(t)
}

func TestSystem_CreateReminder(t *testing.T) {
	gl := &gitlabMock{}
	mockProjectAndMergeRequests(gl)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "@someone :+1:").
		Return(nil)

	sys, st := newTestSystem(t, gl)

	cmd, err := grammar.ParseCommand(cmdContext(), "remind me in 2h: release the thing")
	require.NoError(t, err)

	require.NoError(t, sys.ProcessCommand(context.Background(), cmd))

	reminders, err := st.FindReminders(context.Background(), entities.ReminderFilter{})
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	require.NotNil(t, reminders[0].Message)
	require.Equal(t, "release the thing", *reminders[0].Message)
	require.WithinDuration(t, time.Now().Add(2*time.Hour).UTC(), reminders[0].RemindAt, time.Minute)

	gl.AssertExpectations(t)
}

func TestSystem_Event_MergedNotifiesAndDropsDependency(t *testing.T) {
	gl := &gitlabMock{}
	mockProjectAndMergeRequests(gl)
	gl.On("MergeRequest", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(3)).
		Return(gitlab.MergeRequest{ID: 11, IID: 3, ProjectID: 1, State: "opened", WebURL: "https://gitlab.com/alpha/one/-/merge_requests/3"}, nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "@someone :+1:").
		Return(nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"),
		"@someone related merge request https://gitlab.com/alpha/one/-/merge_requests/3 has been merged").
		Return(nil)

	sys, st := newTestSystem(t, gl)

	ctx := context.Background()

	require.NoError(t, sys.ProcessCommand(ctx, grammar.Command{
		Context: cmdContext(),
		Cmd: grammar.ManageDependency{
			Action:     grammar.ActionAdd,
			Dependency: grammar.MergeRequestPtr{IID: 3},
		},
	}))

	require.NoError(t, sys.ProcessEvent(ctx, grammar.Event{
		Kind:         grammar.MergeRequestMerged,
		Project:      1,
		MergeRequest: 3,
	}))

	deps, err := st.FindMergeRequestDependencies(ctx, entities.DependencyFilter{})
	require.NoError(t, err)
	require.Empty(t, deps)

	gl.AssertExpectations(t)
}

func TestSystem_Event_ReopenedKeepsDependency(t *testing.T) {
	gl := &gitlabMock{}
	mockProjectAndMergeRequests(gl)
	gl.On("MergeRequest", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(3)).
		Return(gitlab.MergeRequest{ID: 11, IID: 3, ProjectID: 1, State: "opened", WebURL: "https://gitlab.com/alpha/one/-/merge_requests/3"}, nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "@someone :+1:").
		Return(nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"),
		"@someone related merge request https://gitlab.com/alpha/one/-/merge_requests/3 has been reopened").
		Return(nil)

	sys, st := newTestSystem(t, gl)

	ctx := context.Background()

	require.NoError(t, sys.ProcessCommand(ctx, grammar.Command{
		Context: cmdContext(),
		Cmd: grammar.ManageDependency{
			Action:     grammar.ActionAdd,
			Dependency: grammar.MergeRequestPtr{IID: 3},
		},
	}))

	require.NoError(t, sys.ProcessEvent(ctx, grammar.Event{
		Kind:         grammar.MergeRequestReopened,
		Project:      1,
		MergeRequest: 3,
	}))

	deps, err := st.FindMergeRequestDependencies(ctx, entities.DependencyFilter{})
	require.NoError(t, err)
	require.Len(t, deps, 1)

	gl.AssertExpectations(t)
}

func TestSystem_Event_UntrackedMergeRequestIsIgnored(t *testing.T) {
	gl := &gitlabMock{}

	sys, _ := newTestSystem(t, gl)

	// No notes may go out for a merge request nobody depends on; the mock
	// has no expectations, so any API call would fail the test.
	require.NoError(t, sys.ProcessEvent(context.Background(), grammar.Event{
		Kind:         grammar.MergeRequestClosed,
		Project:      1,
		MergeRequest: 9,
	}))

	gl.AssertExpectations(t)
}

func TestSystem_CloseReminder(t *testing.T) {
	gl := &gitlabMock{}
	gl.On("User", mock.Anything, gitlab.UserID(100)).
		Return(gitlab.User{ID: 100, Username: "someone"}, nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "@someone ping, ping!").
		Return(nil)

	st := memory.New(zap.NewNop().Sugar())
	sys := New(config.SystemConfig{}, zap.NewNop().Sugar(), gl, st)

	ctx := context.Background()

	userID, err := st.CreateUser(ctx, 100)
	require.NoError(t, err)
	projectID, err := st.CreateProject(ctx, 1)
	require.NoError(t, err)
	mergeRequestID, err := st.CreateMergeRequest(ctx, entities.NewMergeRequest{
		ProjectID: projectID,
		ExtID:     10,
		ExtIID:    2,
		ExtState:  "opened",
	})
	require.NoError(t, err)

	_, err = st.CreateReminder(ctx, entities.NewReminder{
		UserID:          userID,
		MergeRequestID:  mergeRequestID,
		ExtDiscussionID: "cafebabe",
		RemindAt:        time.Now().UTC().Add(-time.Minute),
	})
	require.NoError(t, err)

	sys.closeOverdueReminders(ctx)

	reminders, err := st.FindReminders(ctx, entities.ReminderFilter{})
	require.NoError(t, err)
	require.Empty(t, reminders)

	gl.AssertExpectations(t)
}

func TestSystem_CloseReminder_WithMessage(t *testing.T) {
	gl := &gitlabMock{}
	gl.On("User", mock.Anything, gitlab.UserID(100)).
		Return(gitlab.User{ID: 100, Username: "someone"}, nil)
	gl.On("CreateMergeRequestNote", mock.Anything, gitlab.ProjectID(1), gitlab.MergeRequestIID(2), gitlab.DiscussionID("cafebabe"), "@someone reminding: release the thing").
		Return(nil)

	st := memory.New(zap.NewNop().Sugar())
	sys := New(config.SystemConfig{}, zap.NewNop().Sugar(), gl, st)

	ctx := context.Background()

	userID, err := st.CreateUser(ctx, 100)
	require.NoError(t, err)
	projectID, err := st.CreateProject(ctx, 1)
	require.NoError(t, err)
	mergeRequestID, err := st.CreateMergeRequest(ctx, entities.NewMergeRequest{
		ProjectID: projectID,
		ExtID:     10,
		ExtIID:    2,
		ExtState:  "opened",
	})
	require.NoError(t, err)

	message := "release the thing"
	_, err = st.CreateReminder(ctx, entities.NewReminder{
		UserID:          userID,
		MergeRequestID:  mergeRequestID,
		ExtDiscussionID: "cafebabe",
		Message:         &message,
		RemindAt:        time.Now().UTC().Add(-time.Minute),
	})
	require.NoError(t, err)

	sys.closeOverdueReminders(ctx)

	reminders, err := st.FindReminders(ctx, entities.ReminderFilter{})
	require.NoError(t, err)
	require.Empty(t, reminders)

	gl.AssertExpectations(t)
}
