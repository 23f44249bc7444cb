package app

import (
	"context"

	"go.trai.ch/cadence/internal/adapters/httpapi"
	"go.trai.ch/cadence/internal/build"
	"go.trai.ch/cadence/internal/core/domain"
)

// Serve runs the HTTP API until ctx is done.
func (a *App) Serve(ctx context.Context, cfg *domain.Config) error {
	sched, release := a.newScheduler(cfg)
	defer release()

	server := httpapi.NewServer(sched, a.logger, cfg.Server, build.Version)
	return server.ListenAndServe(ctx)
}
