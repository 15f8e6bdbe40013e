package grammar

import (
	"net/url"
	"strings"

	"github.com/Patryk27/janet/internal/gitlab"
)

// PtrContext carries the "current" namespace and project, used to fill in the
// parts a pointer omits (GitLab's comment-shorthand convention).
type PtrContext struct {
	NamespaceID *gitlab.NamespaceID
	ProjectID   *gitlab.ProjectID
}

// NamespacePtr references a namespace by id or by path.
type NamespacePtr struct {
	ID   *gitlab.NamespaceID
	Name string
}

func (p NamespacePtr) String() string {
	if p.ID != nil {
		return p.ID.String()
	}
	return p.Name
}

// ProjectPtr references a project by id or by an optionally-namespaced name,
// e.g. `123`, `hello-world` or `some/group/hello-world`.
type ProjectPtr struct {
	ID        *gitlab.ProjectID
	Namespace *NamespacePtr
	Name      string
}

func (p ProjectPtr) String() string {
	if p.ID != nil {
		return p.ID.String()
	}
	if p.Namespace != nil {
		return p.Namespace.String() + "/" + p.Name
	}
	return p.Name
}

// MergeRequestPtr references a merge request either as `[project]!iid` or as
// a full web URL.
type MergeRequestPtr struct {
	// Iid variant
	Project *ProjectPtr
	IID     gitlab.MergeRequestIID

	// URL variant
	URL *url.URL
}

func (p MergeRequestPtr) String() string {
	if p.URL != nil {
		return p.URL.String()
	}
	if p.Project != nil {
		return p.Project.String() + "!" + p.IID.String()
	}
	return "!" + p.IID.String()
}

func parseProjectPtr(in string) (ProjectPtr, string, bool) {
	if n, rest, ok := parseNumber(in); ok {
		id := gitlab.ProjectID(n)
		return ProjectPtr{ID: &id}, rest, true
	}

	segments := []string{}
	rest := in
	for {
		name, rest2, ok := parseName(rest)
		if !ok {
			break
		}
		segments = append(segments, name)
		rest = rest2
		if !strings.HasPrefix(rest, "/") {
			break
		}
		// Peek past the slash; a trailing slash without a further
		// segment belongs to whatever follows the pointer.
		if _, _, ok := parseName(rest[1:]); !ok {
			break
		}
		rest = rest[1:]
	}
	if len(segments) == 0 {
		return ProjectPtr{}, in, false
	}

	ptr := ProjectPtr{Name: segments[len(segments)-1]}
	if len(segments) > 1 {
		ptr.Namespace = &NamespacePtr{
			Name: strings.Join(segments[:len(segments)-1], "/"),
		}
	}

	return ptr, rest, true
}

func parseMergeRequestPtr(in string) (MergeRequestPtr, string, bool) {
	if ptr, rest, ok := parseMergeRequestIIDPtr(in); ok {
		return ptr, rest, true
	}
	if u, rest, ok := parseURL(in); ok {
		return MergeRequestPtr{URL: u}, rest, true
	}
	return MergeRequestPtr{}, in, false
}

func parseMergeRequestIIDPtr(in string) (MergeRequestPtr, string, bool) {
	var project *ProjectPtr

	rest := in
	if p, rest2, ok := parseProjectPtr(in); ok {
		project = &p
		rest = rest2
	}

	rest, ok := tag(rest, "!")
	if !ok {
		return MergeRequestPtr{}, in, false
	}

	iid, rest, ok := parseNumber(rest)
	if !ok {
		return MergeRequestPtr{}, in, false
	}

	return MergeRequestPtr{
		Project: project,
		IID:     gitlab.MergeRequestIID(iid),
	}, rest, true
}
