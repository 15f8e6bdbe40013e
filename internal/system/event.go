package system

import (
	"context"
	"fmt"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/grammar"
)

func (s *System) handleEvent(ctx context.Context, evt grammar.Event) error {
	if err := s.audit(ctx, "event", evt); err != nil {
		return err
	}

	// Webhooks arrive for every merge request the bot can see, most of which
	// nobody ever said `depends on` about. Unknown merge requests are simply
	// not in the store, and their events get dropped here.
	mrs, err := s.st.FindMergeRequests(ctx, entities.MergeRequestFilter{
		ExtIID:       &evt.MergeRequest,
		ExtProjectID: &evt.Project,
	})
	if err != nil {
		return err
	}
	if len(mrs) == 0 {
		return nil
	}

	return s.notifyDependencies(ctx, evt.Kind, mrs[0])
}

// notifyDependencies pings everyone who registered a dependency on the merge
// request that just changed state.
func (s *System) notifyDependencies(ctx context.Context, kind grammar.EventKind, mr entities.MergeRequest) error {
	deps, err := s.st.FindMergeRequestDependencies(ctx, entities.DependencyFilter{
		DstID: &mr.ID,
	})
	if err != nil {
		return err
	}

	for _, dep := range deps {
		// A failure for one dependency must not starve the others; as many
		// notes as possible should still get out.
		if err := s.notifyDependency(ctx, kind, dep); err != nil {
			s.log.Errorw("failed to notify about dependency", "id", dep.ID, "error", err)
		}
	}

	return nil
}

func (s *System) notifyDependency(
	ctx context.Context,
	kind grammar.EventKind,
	dep entities.MergeRequestDependency,
) error {
	srcMergeRequest, err := s.mergeRequestByID(ctx, dep.SrcID)
	if err != nil {
		return err
	}
	srcProject, err := s.projectByID(ctx, srcMergeRequest.ProjectID)
	if err != nil {
		return err
	}

	dstMergeRequest, err := s.mergeRequestByID(ctx, dep.DstID)
	if err != nil {
		return err
	}
	dstProject, err := s.projectByID(ctx, dstMergeRequest.ProjectID)
	if err != nil {
		return err
	}

	user, err := s.userByID(ctx, dep.UserID)
	if err != nil {
		return err
	}
	glUser, err := s.gl.User(ctx, user.ExtID)
	if err != nil {
		return err
	}

	glDstMergeRequest, err := s.gl.MergeRequest(ctx, dstProject.ExtID, dstMergeRequest.ExtIID)
	if err != nil {
		return err
	}

	note := fmt.Sprintf(
		"@%s related merge request %s has been %s",
		glUser.Username, glDstMergeRequest.WebURL, kind.Verb(),
	)

	if err := s.postNote(ctx, srcProject.ExtID, srcMergeRequest.ExtIID, dep.ExtDiscussionID, note); err != nil {
		return err
	}

	// A closed or merged target has reached its terminal state, so the
	// dependency has served its purpose; keeping it around would only spam
	// the thread with duplicate notes if the webhook gets redelivered. A
	// reopened merge request stays tracked.
	if kind == grammar.MergeRequestClosed || kind == grammar.MergeRequestMerged {
		return s.st.DeleteMergeRequestDependency(ctx, dep.ID)
	}

	return nil
}
