package grammar

import (
	"strings"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
)

// Action says whether a manageable thing is being added or removed.
type Action int

const (
	ActionAdd Action = iota
	ActionRemove
)

func (a Action) String() string {
	if a == ActionRemove {
		return "remove"
	}
	return "add"
}

// CommandContext identifies where a command was issued: which user wrote it,
// on which merge request, in which discussion thread.
type CommandContext struct {
	User         gitlab.UserID
	MergeRequest MergeRequestPtr
	Discussion   gitlab.DiscussionID
}

// MergeRequestCommand is one of the closed set of commands the bot accepts
// inside a merge request discussion.
type MergeRequestCommand interface {
	isMergeRequestCommand()
}

// Hi is a plain greeting, e.g. "hi!".
type Hi struct{}

// ManageDependency adds or removes a "notify me when that one changes"
// relation, e.g. "depends on project!123".
type ManageDependency struct {
	Action     Action
	Dependency MergeRequestPtr
}

// ManageReminder schedules a ping, e.g. "remind me tomorrow at 12: release".
type ManageReminder struct {
	RemindAt DateTime
	Message  *string
}

func (Hi) isMergeRequestCommand()               {}
func (ManageDependency) isMergeRequestCommand() {}
func (ManageReminder) isMergeRequestCommand()   {}

// Command is a parsed instruction together with the context it came from.
type Command struct {
	Context CommandContext
	Cmd     MergeRequestCommand
}

// ParseCommand parses the bot-mention-stripped text of a comment. The whole
// input must be consumed by exactly one alternative, otherwise the command is
// unknown.
func ParseCommand(ctx CommandContext, text string) (Command, error) {
	for _, parse := range []func(string) (MergeRequestCommand, string, bool){
		parseHi,
		parseManageDependency,
		parseManageReminder,
	} {
		if cmd, rest, ok := parse(text); ok && rest == "" {
			return Command{Context: ctx, Cmd: cmd}, nil
		}
	}

	return Command{}, entities.ErrUnknownCommand
}

func parseHi(in string) (MergeRequestCommand, string, bool) {
	rest, ok := tag(in, "hi")
	if !ok {
		rest, ok = tag(in, "hello")
	}
	if !ok {
		return nil, in, false
	}

	rest = strings.TrimLeft(rest, ".! ")

	return Hi{}, rest, true
}

func parseManageDependency(in string) (MergeRequestCommand, string, bool) {
	action := ActionAdd
	rest := in
	if r, ok := tag(rest, "-"); ok {
		action = ActionRemove
		rest = r
	}

	rest, ok := tag(rest, "depends on ")
	if !ok {
		return nil, in, false
	}

	dependency, rest, ok := parseMergeRequestPtr(rest)
	if !ok {
		return nil, in, false
	}

	return ManageDependency{Action: action, Dependency: dependency}, rest, true
}

func parseManageReminder(in string) (MergeRequestCommand, string, bool) {
	rest, ok := tag(in, "remind ")
	if !ok {
		return nil, in, false
	}
	rest = optTag(rest, "me ")

	remindAt, rest, ok := parseDateTime(rest)
	if !ok {
		return nil, in, false
	}

	var message *string
	if r, ok := tag(rest, ":"); ok {
		msg := strings.TrimSpace(r)
		message = &msg
		rest = ""
	}

	return ManageReminder{RemindAt: remindAt, Message: message}, rest, true
}
