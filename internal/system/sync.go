package system

import (
	"context"
	"fmt"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/Patryk27/janet/internal/grammar"
)

// syncUser loads a user from GitLab and upserts it into the store.
func (s *System) syncUser(ctx context.Context, id gitlab.UserID) (gitlab.User, entities.UserID, error) {
	glUser, err := s.gl.User(ctx, id)
	if err != nil {
		return gitlab.User{}, entities.UserID{}, fmt.Errorf("sync user %s: %w", id, err)
	}

	userID, err := s.st.CreateUser(ctx, glUser.ID)
	if err != nil {
		return gitlab.User{}, entities.UserID{}, err
	}

	return glUser, userID, nil
}

// syncProject loads a project from GitLab and upserts it into the store.
func (s *System) syncProject(ctx context.Context, id gitlab.ProjectID) (gitlab.Project, entities.ProjectID, error) {
	glProject, err := s.gl.Project(ctx, id.String())
	if err != nil {
		return gitlab.Project{}, entities.ProjectID{}, fmt.Errorf("sync project %s: %w", id, err)
	}

	projectID, err := s.st.CreateProject(ctx, glProject.ID)
	if err != nil {
		return gitlab.Project{}, entities.ProjectID{}, err
	}

	return glProject, projectID, nil
}

// syncMergeRequest loads a project and one of its merge requests from GitLab
// and upserts both into the store.
func (s *System) syncMergeRequest(
	ctx context.Context,
	project gitlab.ProjectID,
	iid gitlab.MergeRequestIID,
) (gitlab.Project, gitlab.MergeRequest, entities.MergeRequestID, error) {
	glProject, projectID, err := s.syncProject(ctx, project)
	if err != nil {
		return gitlab.Project{}, gitlab.MergeRequest{}, entities.MergeRequestID{}, err
	}

	glMergeRequest, err := s.gl.MergeRequest(ctx, project, iid)
	if err != nil {
		return gitlab.Project{}, gitlab.MergeRequest{}, entities.MergeRequestID{},
			fmt.Errorf("sync merge request %s!%s: %w", project, iid, err)
	}

	mergeRequestID, err := s.st.CreateMergeRequest(ctx, entities.NewMergeRequest{
		ProjectID: projectID,
		ExtID:     glMergeRequest.ID,
		ExtIID:    glMergeRequest.IID,
		ExtState:  glMergeRequest.State,
	})
	if err != nil {
		return gitlab.Project{}, gitlab.MergeRequest{}, entities.MergeRequestID{}, err
	}

	return glProject, glMergeRequest, mergeRequestID, nil
}

// syncMergeRequestPtr resolves a merge request pointer and upserts the result
// into the store.
func (s *System) syncMergeRequestPtr(
	ctx context.Context,
	ptr grammar.MergeRequestPtr,
	ptrCtx grammar.PtrContext,
) (gitlab.Project, gitlab.MergeRequest, entities.MergeRequestID, error) {
	project, iid, err := ptr.Resolve(ctx, s.gl, ptrCtx)
	if err != nil {
		return gitlab.Project{}, gitlab.MergeRequest{}, entities.MergeRequestID{}, err
	}

	return s.syncMergeRequest(ctx, project, iid)
}

func (s *System) userByID(ctx context.Context, id entities.UserID) (entities.User, error) {
	users, err := s.st.FindUsers(ctx, entities.UserFilter{ID: &id})
	if err != nil {
		return entities.User{}, err
	}
	if len(users) == 0 {
		return entities.User{}, fmt.Errorf("user %s: %w", id, entities.ErrNotFound)
	}

	return users[0], nil
}

func (s *System) projectByID(ctx context.Context, id entities.ProjectID) (entities.Project, error) {
	projects, err := s.st.FindProjects(ctx, entities.ProjectFilter{ID: &id})
	if err != nil {
		return entities.Project{}, err
	}
	if len(projects) == 0 {
		return entities.Project{}, fmt.Errorf("project %s: %w", id, entities.ErrNotFound)
	}

	return projects[0], nil
}

func (s *System) mergeRequestByID(ctx context.Context, id entities.MergeRequestID) (entities.MergeRequest, error) {
	mrs, err := s.st.FindMergeRequests(ctx, entities.MergeRequestFilter{ID: &id})
	if err != nil {
		return entities.MergeRequest{}, err
	}
	if len(mrs) == 0 {
		return entities.MergeRequest{}, fmt.Errorf("merge request %s: %w", id, entities.ErrNotFound)
	}

	return mrs[0], nil
}
