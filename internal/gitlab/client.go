package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Patryk27/janet/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client talks to a GitLab instance over its REST API v4.
type Client struct {
	log  *zap.SugaredLogger
	http *resty.Client
}

// NewClient builds a client authenticated with the configured access token.
func NewClient(log *zap.SugaredLogger, cfg config.GitLabConfig) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetAuthToken(cfg.Token).
		SetTimeout(cfg.Timeout)

	return &Client{
		log:  log.Named("gitlab"),
		http: http,
	}
}

// Ping performs a plain GET on the base URL to verify the instance is up.
func (c *Client) Ping(ctx context.Context) error {
	c.log.Debugw("ping")

	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("ping gitlab: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ping gitlab: %s", resp.Status())
	}

	return nil
}

// User fetches a user by id.
func (c *Client) User(ctx context.Context, id UserID) (User, error) {
	c.log.Debugw("fetching user", "id", id)

	var user User
	if err := c.get(ctx, "/api/v4/users/"+id.String(), &user); err != nil {
		return User{}, fmt.Errorf("get user %s: %w", id, err)
	}

	return user, nil
}

// Project fetches a project by numeric id or full path.
func (c *Client) Project(ctx context.Context, idOrPath string) (Project, error) {
	c.log.Debugw("fetching project", "id", idOrPath)

	var project Project
	if err := c.get(ctx, "/api/v4/projects/"+url.PathEscape(idOrPath), &project); err != nil {
		return Project{}, fmt.Errorf("get project %q: %w", idOrPath, err)
	}

	return project, nil
}

// Namespace fetches a namespace by numeric id or full path.
func (c *Client) Namespace(ctx context.Context, idOrPath string) (Namespace, error) {
	c.log.Debugw("fetching namespace", "id", idOrPath)

	var ns Namespace
	if err := c.get(ctx, "/api/v4/namespaces/"+url.PathEscape(idOrPath), &ns); err != nil {
		return Namespace{}, fmt.Errorf("get namespace %q: %w", idOrPath, err)
	}

	return ns, nil
}

// MergeRequest fetches a single merge request by project id and iid.
func (c *Client) MergeRequest(ctx context.Context, project ProjectID, iid MergeRequestIID) (MergeRequest, error) {
	c.log.Debugw("fetching merge request", "project", project, "iid", iid)

	var mr MergeRequest
	path := "/api/v4/projects/" + project.String() + "/merge_requests/" + iid.String()
	if err := c.get(ctx, path, &mr); err != nil {
		return MergeRequest{}, fmt.Errorf("get merge request %s!%s: %w", project, iid, err)
	}

	return mr, nil
}

// MergeRequests lists all merge requests visible to the bot.
func (c *Client) MergeRequests(ctx context.Context) ([]MergeRequest, error) {
	c.log.Debugw("fetching merge requests")

	var mrs []MergeRequest
	if err := c.get(ctx, "/api/v4/merge_requests?scope=all", &mrs); err != nil {
		return nil, fmt.Errorf("list merge requests: %w", err)
	}

	return mrs, nil
}

// CreateMergeRequestNote posts a note into an existing discussion.
func (c *Client) CreateMergeRequestNote(
	ctx context.Context,
	project ProjectID,
	mergeRequest MergeRequestIID,
	discussion DiscussionID,
	note string,
) error {
	c.log.Debugw("creating merge request note",
		"project", project,
		"merge_request", mergeRequest,
		"discussion", discussion,
	)

	path := "/api/v4/projects/" + project.String() +
		"/merge_requests/" + mergeRequest.String() +
		"/discussions/" + url.PathEscape(discussion.String()) + "/notes"

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"body": note}).
		Post(path)
	if err != nil {
		return fmt.Errorf("create merge request note: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("create merge request note: %s", resp.Status())
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetResult(out).Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected response: %s", resp.Status())
	}

	return nil
}
