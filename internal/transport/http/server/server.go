// Package server exposes the bot's HTTP surface: the GitLab webhook receiver
// plus health and metrics endpoints.
package server

import (
	"context"
	"strings"

	"github.com/Patryk27/janet/config"
	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/Patryk27/janet/internal/grammar"
	"github.com/Patryk27/janet/internal/metrics"
	"github.com/Patryk27/janet/internal/system"
	"github.com/Patryk27/janet/internal/transport/http/middleware"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server handles webhook traffic from GitLab.
type Server struct {
	log *zap.SugaredLogger
	cfg *config.Config
	gl  gitlab.API
	sys *system.System
	app *fiber.App
}

// New builds the fiber application with all routes registered.
func New(log *zap.SugaredLogger, cfg *config.Config, gl gitlab.API, sys *system.System) *Server {
	s := &Server{
		log: log.Named("http"),
		cfg: cfg,
		gl:  gl,
		sys: sys,
	}

	app := fiber.New(fiber.Config{
		// GitLab webhook payloads are small; anything bigger is not ours.
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))

	app.Get("/healthz", s.handleHealthz)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Post("/webhooks/gitlab", s.handleGitLabWebhook)

	s.app = app

	return s
}

// App returns the underlying fiber application; tests drive it directly.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.ServerAddr())
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealthz(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

// handleGitLabWebhook accepts every payload with 204: GitLab retries webhooks
// on error responses, and a malformed or irrelevant event will not get better
// the second time around.
func (s *Server) handleGitLabWebhook(c *fiber.Ctx) error {
	metrics.WebhooksTotal.Inc()

	var event gitlab.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		s.log.Warnw("unknown webhook event", "error", err, "body", string(c.Body()))
		return c.SendStatus(fiber.StatusNoContent)
	}

	switch event.EventType {
	case "note":
		s.handleNote(c.UserContext(), event)
	case "merge_request":
		s.handleMergeRequest(c.UserContext(), event)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleNote(ctx context.Context, event gitlab.WebhookEvent) {
	if event.MergeRequest == nil {
		return
	}

	// Only comments addressed to the bot are commands; everything else is
	// regular review chatter.
	prefix := "@" + s.cfg.Bot.Name + " "
	text := event.ObjectAttributes.Description
	if !strings.HasPrefix(text, prefix) {
		return
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, prefix))

	projectID := event.Project.ID

	cmdCtx := grammar.CommandContext{
		User: event.ObjectAttributes.AuthorID,
		MergeRequest: grammar.MergeRequestPtr{
			Project: &grammar.ProjectPtr{ID: &projectID},
			IID:     event.MergeRequest.IID,
		},
		Discussion: event.ObjectAttributes.DiscussionID,
	}

	cmd, err := grammar.ParseCommand(cmdCtx, text)
	if err != nil {
		s.log.Warnw("could not parse command", "text", text, "error", err)
		s.replyUnknownCommand(ctx, event)
		return
	}

	if err := s.sys.ProcessCommand(ctx, cmd); err != nil {
		s.log.Errorw("failed to process command", "error", err)
	}
}

func (s *Server) replyUnknownCommand(ctx context.Context, event gitlab.WebhookEvent) {
	user, err := s.gl.User(ctx, event.ObjectAttributes.AuthorID)
	if err != nil {
		s.log.Errorw("failed to load comment author", "error", err)
		return
	}

	err = s.gl.CreateMergeRequestNote(
		ctx,
		event.Project.ID,
		event.MergeRequest.IID,
		event.ObjectAttributes.DiscussionID,
		"@"+user.Username+": sorry, I'm not sure what you mean - could you please remove your comment and re-send it?",
	)
	if err != nil {
		s.log.Errorw("failed to reply to unknown command", "error", err)
	}
}

func (s *Server) handleMergeRequest(ctx context.Context, event gitlab.WebhookEvent) {
	var kind grammar.EventKind

	switch event.ObjectAttributes.Action {
	case "close":
		kind = grammar.MergeRequestClosed
	case "merge":
		kind = grammar.MergeRequestMerged
	case "reopen":
		kind = grammar.MergeRequestReopened
	default:
		return
	}

	evt := grammar.Event{
		Kind:         kind,
		Project:      event.Project.ID,
		MergeRequest: event.ObjectAttributes.IID,
	}

	if err := s.sys.ProcessEvent(ctx, evt); err != nil {
		s.log.Errorw("failed to process event", "error", err)
	}
}
