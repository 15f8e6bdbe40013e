// Package system is the asynchronous heart of the bot: commands parsed from
// comments and events extracted from webhooks get queued here and processed by
// background workers.
package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Patryk27/janet/config"
	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/Patryk27/janet/internal/grammar"
	"github.com/Patryk27/janet/internal/metrics"
	"github.com/Patryk27/janet/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// System accepts commands and events and processes them in the background.
// With cfg.Sync enabled the Process methods block until the handler finishes,
// which makes effects observable right after the call returns.
type System struct {
	log *zap.SugaredLogger
	cfg config.SystemConfig
	gl  gitlab.API
	st  store.Store

	cmds *queue[packet[grammar.Command]]
	evts *queue[packet[grammar.Event]]
}

// New constructs a System; call Run to start its workers.
func New(cfg config.SystemConfig, log *zap.SugaredLogger, gl gitlab.API, st store.Store) *System {
	return &System{
		log:  log.Named("system"),
		cfg:  cfg,
		gl:   gl,
		st:   st,
		cmds: newQueue[packet[grammar.Command]](),
		evts: newQueue[packet[grammar.Event]](),
	}
}

// Run drives the consumer loops and the reminder tracker until ctx is
// cancelled or one of them fails.
func (s *System) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.consumeCommands(ctx)
	})
	g.Go(func() error {
		return s.consumeEvents(ctx)
	})
	g.Go(func() error {
		return s.trackReminders(ctx)
	})

	return g.Wait()
}

// ProcessCommand enqueues a command; in sync mode it waits until the command
// has been fully handled.
func (s *System) ProcessCommand(ctx context.Context, cmd grammar.Command) error {
	metrics.CommandsTotal.Inc()

	return process(ctx, s.cmds, cmd, s.cfg.Sync)
}

// ProcessEvent enqueues an event; in sync mode it waits until the event has
// been fully handled.
func (s *System) ProcessEvent(ctx context.Context, evt grammar.Event) error {
	metrics.EventsTotal.Inc()

	return process(ctx, s.evts, evt, s.cfg.Sync)
}

func process[T any](ctx context.Context, q *queue[packet[T]], item T, sync bool) error {
	p := packet[T]{item: item}
	if sync {
		p.done = make(chan struct{})
	}

	q.push(p)

	if !sync {
		return nil
	}

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *System) consumeCommands(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case p, ok := <-s.cmds.out:
			if !ok {
				return errors.New("command queue closed")
			}
			go s.handleCommandPacket(ctx, p)
		}
	}
}

func (s *System) consumeEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case p, ok := <-s.evts.out:
			if !ok {
				return errors.New("event queue closed")
			}
			go s.handleEventPacket(ctx, p)
		}
	}
}

func (s *System) handleCommandPacket(ctx context.Context, p packet[grammar.Command]) {
	defer p.markHandled()

	if err := s.handleCommand(ctx, p.item); err != nil {
		metrics.CommandsFailedTotal.Inc()
		s.log.Errorw("failed to handle command", "error", err)
		return
	}

	s.log.Infow("command handled", "user", p.item.Context.User)
}

func (s *System) handleEventPacket(ctx context.Context, p packet[grammar.Event]) {
	defer p.markHandled()

	if err := s.handleEvent(ctx, p.item); err != nil {
		metrics.EventsFailedTotal.Inc()
		s.log.Errorw("failed to handle event", "error", err)
		return
	}

	s.log.Infow("event handled", "kind", p.item.Kind)
}

// audit appends a log row describing what the system was asked to do; every
// command and event passes through here before its handler runs.
func (s *System) audit(ctx context.Context, event string, item any) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event, err)
	}

	return s.st.CreateLogEntry(ctx, event, string(payload))
}

// postNote sends a note into a merge request discussion.
func (s *System) postNote(
	ctx context.Context,
	project gitlab.ProjectID,
	mergeRequest gitlab.MergeRequestIID,
	discussion gitlab.DiscussionID,
	note string,
) error {
	if err := s.gl.CreateMergeRequestNote(ctx, project, mergeRequest, discussion, note); err != nil {
		return err
	}

	metrics.NotesTotal.Inc()

	return nil
}
