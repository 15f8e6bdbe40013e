package gitlab

import "context"

// API is the slice of the GitLab REST API the bot depends on.
type API interface {
	// Ping checks that the GitLab instance responds at all.
	Ping(ctx context.Context) error

	User(ctx context.Context, id UserID) (User, error)

	// Project accepts either a numeric id or a full path ("group/project").
	Project(ctx context.Context, idOrPath string) (Project, error)

	// Namespace accepts either a numeric id or a full path.
	Namespace(ctx context.Context, idOrPath string) (Namespace, error)

	MergeRequest(ctx context.Context, project ProjectID, iid MergeRequestIID) (MergeRequest, error)

	// MergeRequests lists all merge requests visible to the bot, across projects.
	MergeRequests(ctx context.Context) ([]MergeRequest, error)

	CreateMergeRequestNote(
		ctx context.Context,
		project ProjectID,
		mergeRequest MergeRequestIID,
		discussion DiscussionID,
		note string,
	) error
}
