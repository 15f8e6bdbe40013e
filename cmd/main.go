// Package main wires the webhook server and the background system together.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Patryk27/janet/config"
	"github.com/Patryk27/janet/internal/gitlab"
	"github.com/Patryk27/janet/internal/store"
	"github.com/Patryk27/janet/internal/system"
	"github.com/Patryk27/janet/internal/transport/http/server"
	"github.com/Patryk27/janet/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	st, err := store.New(ctx, cfg.Store.Backend, log, cfg)
	if err != nil {
		log.Errorw("store initialization error", "error", err)
		return
	}
	if err := st.OnStart(ctx); err != nil {
		log.Errorw("store start error", "error", err)
		return
	}
	defer func() {
		_ = st.OnStop(context.Background())
	}()

	gl := gitlab.NewClient(log, cfg.GitLab)
	if err := gl.Ping(ctx); err != nil {
		log.Errorw("gitlab is unreachable", "error", err, "url", cfg.GitLab.URL)
		return
	}

	sys := system.New(cfg.System, log, gl, st)

	systemDone := make(chan error, 1)
	go func() {
		systemDone <- sys.Run(ctx)
	}()

	serv := server.New(log, cfg, gl, sys)

	go func() {
		log.Infow("starting server", "addr", cfg.ServerAddr())
		if err := serv.Listen(); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-systemDone:
		if err != nil {
			log.Errorw("system stopped", "error", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
