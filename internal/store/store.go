// Package store provides a factory for storage backends.
package store

import (
	"context"
	"fmt"

	"github.com/Patryk27/janet/config"
	"github.com/Patryk27/janet/internal/store/memory"
	"github.com/Patryk27/janet/internal/store/postgres"

	"go.uber.org/zap"
)

// Store aggregates all persistence interfaces.
type Store interface {
	LifecycleInterface
	UserInterface
	ProjectInterface
	MergeRequestInterface
	DependencyInterface
	ReminderInterface
	LogInterface
}

// New constructs a store backend by name.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config) (Store, error) {
	switch name {
	case "postgres":
		return postgres.New(ctx, log, cfg), nil
	case "memory":
		return memory.New(log), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", name)
	}
}
