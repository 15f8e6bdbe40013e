// Package gitlab provides a typed GitLab REST client and webhook payloads.
package gitlab

import "strconv"

// UserID is a GitLab user id.
type UserID int64

// ProjectID is a GitLab project id.
type ProjectID int64

// NamespaceID is a GitLab namespace id.
type NamespaceID int64

// MergeRequestID is a GitLab-global merge request id.
type MergeRequestID int64

// MergeRequestIID is a merge request iid, scoped to its project.
type MergeRequestIID int64

// DiscussionID identifies a discussion thread within a merge request.
// Comparisons are case sensitive.
type DiscussionID string

func (id UserID) String() string          { return strconv.FormatInt(int64(id), 10) }
func (id ProjectID) String() string       { return strconv.FormatInt(int64(id), 10) }
func (id NamespaceID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id MergeRequestID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id MergeRequestIID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id DiscussionID) String() string    { return string(id) }
