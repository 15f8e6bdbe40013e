package grammar

import (
	"testing"
	"time"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/stretchr/testify/require"
)

func testContext() CommandContext {
	return CommandContext{
		User:         250,
		MergeRequest: MergeRequestPtr{IID: 1},
		Discussion:   "cafebabe",
	}
}

func strPtr(s string) *string { return &s }

func TestParseCommand_Hi(t *testing.T) {
	for _, input := range []string{
		"hi", "HI", "hi.", "hi!", "hi!!", "hi !!",
		"hello", "HELLO", "hello.", "hello!", "hello!!", "hello !!",
	} {
		t.Run(input, func(t *testing.T) {
			cmd, err := ParseCommand(testContext(), input)
			require.NoError(t, err)
			require.Equal(t, Hi{}, cmd.Cmd)
		})
	}
}

func TestParseCommand_ManageDependency(t *testing.T) {
	cases := []struct {
		input    string
		expected ManageDependency
	}{
		{
			"depends on !123",
			ManageDependency{
				Action:     ActionAdd,
				Dependency: MergeRequestPtr{IID: 123},
			},
		},
		{
			"-depends on !123",
			ManageDependency{
				Action:     ActionRemove,
				Dependency: MergeRequestPtr{IID: 123},
			},
		},
		{
			"depends on project!123",
			ManageDependency{
				Action: ActionAdd,
				Dependency: MergeRequestPtr{
					Project: &ProjectPtr{Name: "project"},
					IID:     123,
				},
			},
		},
		{
			"-depends on proj!123",
			ManageDependency{
				Action: ActionRemove,
				Dependency: MergeRequestPtr{
					Project: &ProjectPtr{Name: "proj"},
					IID:     123,
				},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			cmd, err := ParseCommand(testContext(), c.input)
			require.NoError(t, err)
			require.Equal(t, c.expected, cmd.Cmd)
		})
	}
}

func TestParseCommand_ManageDependencyURL(t *testing.T) {
	cmd, err := ParseCommand(
		testContext(),
		"depends on https://gitlab.com/some/project/-/merge_requests/123",
	)
	require.NoError(t, err)

	dep, ok := cmd.Cmd.(ManageDependency)
	require.True(t, ok)
	require.Equal(t, ActionAdd, dep.Action)
	require.NotNil(t, dep.Dependency.URL)
}

func TestParseCommand_ManageReminder(t *testing.T) {
	remindAt := DateTime{
		Date: datePtr(relativeDays(1)),
		Time: timePtr(absoluteTime(12, 0)),
	}

	cases := []struct {
		input    string
		expected ManageReminder
	}{
		{
			"remind me tomorrow at 12: important important!",
			ManageReminder{RemindAt: remindAt, Message: strPtr("important important!")},
		},
		{
			"remind tomorrow at 12: important important!",
			ManageReminder{RemindAt: remindAt, Message: strPtr("important important!")},
		},
		{
			"remind me tomorrow at 12",
			ManageReminder{RemindAt: remindAt},
		},
		{
			"remind tomorrow at 12",
			ManageReminder{RemindAt: remindAt},
		},
		{
			"remind me in 0s: works!",
			ManageReminder{
				RemindAt: DateTime{Time: timePtr(relativeTime(RelativeTime{Seconds: intPtr(0)}))},
				Message:  strPtr("works!"),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			cmd, err := ParseCommand(testContext(), c.input)
			require.NoError(t, err)
			require.Equal(t, c.expected, cmd.Cmd)
		})
	}
}

func TestParseCommand_Unknown(t *testing.T) {
	for _, input := range []string{
		"",
		"what's up",
		"hi there",
		"depends on",
		"depends on nothing here",
		"remind me",
		"remind me tomorrow trailing garbage",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCommand(testContext(), input)
			require.ErrorIs(t, err, entities.ErrUnknownCommand)
		})
	}
}

func TestParseCommand_KeepsContext(t *testing.T) {
	ctx := CommandContext{
		User:         gitlab.UserID(7),
		MergeRequest: MergeRequestPtr{IID: 42},
		Discussion:   gitlab.DiscussionID("deadbeef"),
	}

	cmd, err := ParseCommand(ctx, "hi")
	require.NoError(t, err)
	require.Equal(t, ctx, cmd.Context)
}

func TestParseCommand_ReminderResolves(t *testing.T) {
	cmd, err := ParseCommand(testContext(), "remind me in 3h 30m")
	require.NoError(t, err)

	reminder := cmd.Cmd.(ManageReminder)
	now := time.Date(2022, time.June, 10, 8, 0, 0, 0, time.UTC)

	resolved, err := reminder.RemindAt.ResolveUTC(now)
	require.NoError(t, err)
	require.Equal(t, now.Add(3*time.Hour+30*time.Minute), resolved)
}
