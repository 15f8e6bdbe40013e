package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/Patryk27/janet/internal/grammar"
)

func (s *System) handleCommand(ctx context.Context, cmd grammar.Command) error {
	if err := s.audit(ctx, "command", cmd); err != nil {
		return err
	}

	err := s.dispatchCommand(ctx, cmd)
	if err == nil {
		return nil
	}

	// Whatever went wrong, the user deserves an answer in the same thread;
	// only genuinely unexpected errors also propagate to the caller.
	if replyErr := s.replyError(ctx, cmd.Context, err); replyErr != nil {
		return replyErr
	}

	if errors.Is(err, entities.ErrMergeRequestNotFound) {
		return nil
	}

	return err
}

func (s *System) dispatchCommand(ctx context.Context, cmd grammar.Command) error {
	switch c := cmd.Cmd.(type) {
	case grammar.Hi:
		return s.handleHi(ctx, cmd.Context)
	case grammar.ManageDependency:
		return s.handleManageDependency(ctx, cmd.Context, c)
	case grammar.ManageReminder:
		return s.handleManageReminder(ctx, cmd.Context, c)
	default:
		return fmt.Errorf("unsupported command %T", c)
	}
}

func (s *System) replyError(ctx context.Context, cmdCtx grammar.CommandContext, cause error) error {
	glUser, err := s.gl.User(ctx, cmdCtx.User)
	if err != nil {
		return err
	}

	project, iid, err := cmdCtx.MergeRequest.Resolve(ctx, s.gl, grammar.PtrContext{})
	if err != nil {
		return err
	}

	var text string
	if errors.Is(cause, entities.ErrMergeRequestNotFound) {
		text = "sorry, I couldn't find this merge request - could you please ensure it exists and re-create your comment?"
	} else {
		text = fmt.Sprintf(
			"well, this is embarrassing - there was an issue processing your request:\n```\n%s\n```\nCould you please contact the administrator?",
			cause,
		)
	}

	return s.postNote(ctx, project, iid, cmdCtx.Discussion, fmt.Sprintf("@%s %s", glUser.Username, text))
}

func (s *System) handleHi(ctx context.Context, cmdCtx grammar.CommandContext) error {
	glUser, err := s.gl.User(ctx, cmdCtx.User)
	if err != nil {
		return err
	}

	project, iid, err := cmdCtx.MergeRequest.Resolve(ctx, s.gl, grammar.PtrContext{})
	if err != nil {
		return err
	}

	return s.postNote(ctx, project, iid, cmdCtx.Discussion, fmt.Sprintf("Hi, @%s!", glUser.Username))
}

func (s *System) handleManageDependency(
	ctx context.Context,
	cmdCtx grammar.CommandContext,
	cmd grammar.ManageDependency,
) error {
	glUser, userID, err := s.syncUser(ctx, cmdCtx.User)
	if err != nil {
		return err
	}

	glProject, glMergeRequest, mergeRequestID, err := s.syncMergeRequestPtr(ctx, cmdCtx.MergeRequest, grammar.PtrContext{})
	if err != nil {
		return err
	}

	srcCtx := grammar.PtrContext{
		NamespaceID: &glProject.Namespace.ID,
		ProjectID:   &glProject.ID,
	}

	dstProject, dstIID, err := cmd.Dependency.Resolve(ctx, s.gl, srcCtx)
	if err != nil {
		return entities.ErrMergeRequestNotFound
	}

	if err := s.manageDependency(ctx, cmdCtx, cmd.Action, userID, mergeRequestID, dstProject, dstIID); err != nil {
		return err
	}

	// TODO maybe we could thumbs-up the post instead of sending a comment?

	return s.postNote(
		ctx,
		glProject.ID,
		glMergeRequest.IID,
		cmdCtx.Discussion,
		fmt.Sprintf("@%s :+1:", glUser.Username),
	)
}

func (s *System) manageDependency(
	ctx context.Context,
	cmdCtx grammar.CommandContext,
	action grammar.Action,
	userID entities.UserID,
	srcID entities.MergeRequestID,
	dstProject gitlab.ProjectID,
	dstIID gitlab.MergeRequestIID,
) error {
	// A pointer can be resolvable yet point at nothing, e.g. `project!123`
	// when the project exists but the merge request does not, so the target
	// is checked against the live API before anything gets stored.
	if _, err := s.gl.MergeRequest(ctx, dstProject, dstIID); err != nil {
		return entities.ErrMergeRequestNotFound
	}

	deps, err := s.st.FindMergeRequestDependencies(ctx, entities.DependencyFilter{
		UserID:          &userID,
		ExtDiscussionID: &cmdCtx.Discussion,
		SrcID:           &srcID,
	})
	if err != nil {
		return err
	}

	_, _, dstID, err := s.syncMergeRequest(ctx, dstProject, dstIID)
	if err != nil {
		return err
	}

	if action == grammar.ActionAdd {
		// Someone might post the same `depends on !123` comment twice; the
		// second request is silently ignored to keep the thread tidy.
		if len(deps) > 0 {
			return nil
		}

		_, err = s.st.CreateMergeRequestDependency(ctx, entities.NewMergeRequestDependency{
			UserID:          userID,
			ExtDiscussionID: cmdCtx.Discussion,
			SrcID:           srcID,
			DstID:           dstID,
		})
		return err
	}

	// Removing an already-removed dependency is a no-op for the same reason.
	if len(deps) == 0 {
		return nil
	}

	return s.st.DeleteMergeRequestDependency(ctx, deps[0].ID)
}

func (s *System) handleManageReminder(
	ctx context.Context,
	cmdCtx grammar.CommandContext,
	cmd grammar.ManageReminder,
) error {
	remindAt, err := cmd.RemindAt.ResolveUTC(time.Now())
	if err != nil {
		return err
	}

	glUser, userID, err := s.syncUser(ctx, cmdCtx.User)
	if err != nil {
		return err
	}

	glProject, glMergeRequest, mergeRequestID, err := s.syncMergeRequestPtr(ctx, cmdCtx.MergeRequest, grammar.PtrContext{})
	if err != nil {
		return err
	}

	if _, err := s.st.CreateReminder(ctx, entities.NewReminder{
		UserID:          userID,
		MergeRequestID:  mergeRequestID,
		ExtDiscussionID: cmdCtx.Discussion,
		Message:         cmd.Message,
		RemindAt:        remindAt,
	}); err != nil {
		return err
	}

	return s.postNote(
		ctx,
		glProject.ID,
		glMergeRequest.IID,
		cmdCtx.Discussion,
		fmt.Sprintf("@%s :+1:", glUser.Username),
	)
}
