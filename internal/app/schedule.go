package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/cadence/internal/adapters/linear"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ScheduleOptions configures the Schedule method.
type ScheduleOptions struct {
	// ProjectID is echoed in every result. Empty uses each file's base name.
	ProjectID string
	// Output is domain.OutputText or domain.OutputJSON.
	Output string
	// Watch re-schedules files whenever they change until ctx is done.
	Watch bool
}

type fileResult struct {
	schedule *domain.Schedule
	err      error
}

// Schedule orders the tasks of every file concurrently and prints the results in
// argument order. It fails with domain.ErrScheduleFailed if any file failed.
func (a *App) Schedule(ctx context.Context, cfg *domain.Config, files []string, opts ScheduleOptions) error {
	if len(files) == 0 {
		return domain.ErrNoInputFiles
	}

	renderer, err := linear.NewRenderer(opts.Output)
	if err != nil {
		return err
	}

	if opts.Watch {
		for _, f := range files {
			if f == domain.StdinPath {
				return zerr.Wrap(domain.ErrWatchFailed, "cannot watch standard input")
			}
		}
	}

	sched, release := a.newScheduler(cfg)
	defer release()

	results := a.scheduleFiles(ctx, sched, files, opts)

	failed := 0
	for i, res := range results {
		if i > 0 {
			a.separate(opts)
		}
		if err := a.render(renderer, files[i], res); err != nil {
			return err
		}
		if res.err != nil {
			failed++
		}
	}

	if opts.Watch {
		return a.watch(ctx, sched, renderer, files, opts)
	}

	if failed > 0 {
		err := zerr.Wrap(domain.ErrScheduleFailed, fmt.Sprintf("%d of %d task file(s) could not be scheduled", failed, len(files)))
		return zerr.With(err, "failed", failed)
	}
	return nil
}

func (a *App) scheduleFiles(ctx context.Context, sched ports.Scheduler, files []string, opts ScheduleOptions) []fileResult {
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			results[i] = a.scheduleFile(gctx, sched, file, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *App) scheduleFile(ctx context.Context, sched ports.Scheduler, file string, opts ScheduleOptions) fileResult {
	var (
		payload []byte
		err     error
	)
	if file == domain.StdinPath {
		payload, err = a.payloadLoader.Read(file, a.stdin)
	} else {
		payload, err = a.payloadLoader.Load(file)
	}
	if err != nil {
		return fileResult{err: err}
	}

	s, err := sched.Schedule(ctx, projectID(file, opts.ProjectID), payload)
	return fileResult{schedule: s, err: err}
}

func (a *App) render(renderer ports.Renderer, file string, res fileResult) error {
	if res.err != nil {
		a.logger.Debug(fmt.Sprintf("scheduling %s failed: %v", file, res.err))
		return renderer.RenderFailure(a.stdout, file, res.err)
	}
	for _, u := range res.schedule.Unresolved {
		a.logger.Debug(fmt.Sprintf("%s: task %q depends on unknown task %q, ignoring", file, u.Task, u.Dependency))
	}
	return renderer.RenderSchedule(a.stdout, file, res.schedule)
}

// watch re-schedules files as they change until the watcher stops.
func (a *App) watch(
	ctx context.Context,
	sched ports.Scheduler,
	renderer ports.Renderer,
	files []string,
	opts ScheduleOptions,
) error {
	byPath := make(map[string]string, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", f)
		}
		byPath[abs] = f
	}

	if err := a.watcher.Start(ctx, files); err != nil {
		return err
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop watcher: " + err.Error())
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %d task file(s) for changes, press Ctrl+C to stop", len(files)))

	for event := range a.watcher.Events() {
		file, ok := byPath[event.Path]
		if !ok {
			continue
		}

		switch event.Operation {
		case ports.OpRemove, ports.OpRename:
			a.logger.Warn(fmt.Sprintf("%s was removed, waiting for it to reappear", file))
			continue
		case ports.OpCreate, ports.OpWrite:
		}

		a.separate(opts)
		if err := a.render(renderer, file, a.scheduleFile(ctx, sched, file, opts)); err != nil {
			return err
		}
	}

	return nil
}

// separate writes the blank line between two text results. JSON results are
// newline-delimited already.
func (a *App) separate(opts ScheduleOptions) {
	if opts.Output != domain.OutputJSON {
		_, _ = io.WriteString(a.stdout, "\n")
	}
}

// projectID returns explicit, or the base name of file without its extension.
func projectID(file, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if file == domain.StdinPath {
		return "stdin"
	}
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
