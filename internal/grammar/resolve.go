package grammar

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Patryk27/janet/internal/gitlab"
)

// Resolve translates the pointer into a namespace id.
func (p NamespacePtr) Resolve(ctx context.Context, gl gitlab.API) (gitlab.NamespaceID, error) {
	if p.ID != nil {
		return *p.ID, nil
	}

	ns, err := gl.Namespace(ctx, p.Name)
	if err != nil {
		return 0, fmt.Errorf("resolve namespace %q: %w", p.Name, err)
	}

	return ns.ID, nil
}

// Resolve translates the pointer into a project id, falling back to the
// context's namespace when the pointer carries none.
func (p ProjectPtr) Resolve(ctx context.Context, gl gitlab.API, ptrCtx PtrContext) (gitlab.ProjectID, error) {
	if p.ID != nil {
		return *p.ID, nil
	}

	var (
		nsID gitlab.NamespaceID
		err  error
	)
	switch {
	case p.Namespace != nil:
		nsID, err = p.Namespace.Resolve(ctx, gl)
		if err != nil {
			return 0, err
		}
	case ptrCtx.NamespaceID != nil:
		nsID = *ptrCtx.NamespaceID
	default:
		return 0, errors.New("cannot infer namespace id")
	}

	ns, err := gl.Namespace(ctx, nsID.String())
	if err != nil {
		return 0, fmt.Errorf("resolve project %q: %w", p.Name, err)
	}

	project, err := gl.Project(ctx, ns.FullPath+"/"+p.Name)
	if err != nil {
		return 0, fmt.Errorf("resolve project %q: %w", p.Name, err)
	}

	return project.ID, nil
}

// Resolve translates the pointer into a concrete (project id, iid) pair,
// falling back to the context's project when the pointer carries none.
func (p MergeRequestPtr) Resolve(
	ctx context.Context,
	gl gitlab.API,
	ptrCtx PtrContext,
) (gitlab.ProjectID, gitlab.MergeRequestIID, error) {
	if p.URL != nil {
		return p.resolveURL(ctx, gl)
	}

	var (
		project gitlab.ProjectID
		err     error
	)
	switch {
	case p.Project != nil:
		project, err = p.Project.Resolve(ctx, gl, ptrCtx)
		if err != nil {
			return 0, 0, err
		}
	case ptrCtx.ProjectID != nil:
		project = *ptrCtx.ProjectID
	default:
		return 0, 0, errors.New("cannot infer project id")
	}

	return project, p.IID, nil
}

// GitLab's API offers no lookup-by-URL, so the URL variant scans all merge
// requests visible to the bot and matches on the URL path.
func (p MergeRequestPtr) resolveURL(
	ctx context.Context,
	gl gitlab.API,
) (gitlab.ProjectID, gitlab.MergeRequestIID, error) {
	wanted := strings.ToLower(p.URL.Path)

	mrs, err := gl.MergeRequests(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("resolve merge request %s: %w", p.URL, err)
	}

	for _, mr := range mrs {
		u, err := url.Parse(mr.WebURL)
		if err != nil {
			continue
		}
		if strings.ToLower(u.Path) == wanted {
			return mr.ProjectID, mr.IID, nil
		}
	}

	return 0, 0, fmt.Errorf("no merge request matches %s", p.URL)
}
