package grammar

import "github.com/Patryk27/janet/internal/gitlab"

// EventKind enumerates merge request state changes the bot reacts to.
type EventKind string

const (
	MergeRequestClosed   EventKind = "merge_request_closed"
	MergeRequestMerged   EventKind = "merge_request_merged"
	MergeRequestReopened EventKind = "merge_request_reopened"
)

// Verb returns the past-tense verb used in notification notes.
func (k EventKind) Verb() string {
	switch k {
	case MergeRequestClosed:
		return "closed"
	case MergeRequestMerged:
		return "merged"
	default:
		return "reopened"
	}
}

// Event is a merge request state change observed via webhook.
type Event struct {
	Kind         EventKind              `json:"kind"`
	Project      gitlab.ProjectID       `json:"project"`
	MergeRequest gitlab.MergeRequestIID `json:"merge_request"`
}
