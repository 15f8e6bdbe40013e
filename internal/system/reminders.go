package system

import (
	"context"
	"fmt"
	"time"

	"github.com/Patryk27/janet/internal/entities"
	"github.com/Patryk27/janet/internal/metrics"
)

// trackReminders polls the store for overdue reminders and delivers them.
// Polling is crude next to a proper delay queue, but at the rate reminders
// come in it works just fine.
func (s *System) trackReminders(ctx context.Context) error {
	interval := s.cfg.ReminderInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	for {
		s.closeOverdueReminders(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (s *System) closeOverdueReminders(ctx context.Context) {
	now := time.Now().UTC()

	reminders, err := s.st.FindReminders(ctx, entities.ReminderFilter{OverdueBy: &now})
	if err != nil {
		// A transient store error should not kill the tracker; the next tick
		// retries.
		s.log.Errorw("failed to find overdue reminders", "error", err)
		return
	}

	for _, reminder := range reminders {
		if err := s.closeReminder(ctx, reminder); err != nil {
			// TODO if the target discussion got removed, drop the reminder
			s.log.Errorw("failed to close reminder", "id", reminder.ID, "error", err)
		}
	}
}

// closeReminder notifies the reminder's author and removes the reminder.
func (s *System) closeReminder(ctx context.Context, reminder entities.Reminder) error {
	s.log.Infow("closing reminder", "id", reminder.ID)

	mergeRequest, err := s.mergeRequestByID(ctx, reminder.MergeRequestID)
	if err != nil {
		return err
	}
	project, err := s.projectByID(ctx, mergeRequest.ProjectID)
	if err != nil {
		return err
	}
	user, err := s.userByID(ctx, reminder.UserID)
	if err != nil {
		return err
	}

	glUser, err := s.gl.User(ctx, user.ExtID)
	if err != nil {
		return err
	}

	text := "ping, ping!"
	if reminder.Message != nil {
		text = fmt.Sprintf("reminding: %s", *reminder.Message)
	}

	note := fmt.Sprintf("@%s %s", glUser.Username, text)

	if err := s.postNote(ctx, project.ExtID, mergeRequest.ExtIID, reminder.ExtDiscussionID, note); err != nil {
		return err
	}

	if err := s.st.DeleteReminder(ctx, reminder.ID); err != nil {
		return err
	}

	metrics.RemindersClosedTotal.Inc()

	return nil
}
