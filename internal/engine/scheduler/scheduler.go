// Package scheduler implements the task ordering engine.
package scheduler

import (
	"context"
	"fmt"

	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/core/ports"
)

// Scheduler validates scheduling requests, orders their tasks and computes metrics.
// It keeps no state between calls and is safe for concurrent use.
type Scheduler struct {
	tracer    ports.Tracer
	logger    ports.Logger
	validator *Validator
}

// Option configures a Scheduler.
type Option func(*schedulerOptions)

type schedulerOptions struct {
	maxTasks int
	strict   bool
}

// WithMaxTasks limits the number of tasks accepted in one request. Zero disables the limit.
func WithMaxTasks(n int) Option {
	return func(o *schedulerOptions) {
		o.maxTasks = n
	}
}

// WithStrictDependencies rejects dependencies naming a title that is not part of the request.
func WithStrictDependencies(strict bool) Option {
	return func(o *schedulerOptions) {
		o.strict = strict
	}
}

// NewScheduler creates a new Scheduler.
func NewScheduler(tracer ports.Tracer, logger ports.Logger, opts ...Option) *Scheduler {
	var o schedulerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Scheduler{
		tracer:    tracer,
		logger:    logger,
		validator: NewValidator(o.maxTasks, o.strict),
	}
}

// Schedule runs the validate, build-graph, sort and metrics stages over payload.
func (s *Scheduler) Schedule(ctx context.Context, projectID string, payload []byte) (*domain.Schedule, error) {
	ctx, span := s.tracer.Start(ctx, domain.SpanSchedule, ports.WithAttribute(domain.AttrProject, projectID))
	defer span.End()

	result, err := s.schedule(ctx, projectID, payload)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

func (s *Scheduler) schedule(ctx context.Context, projectID string, payload []byte) (*domain.Schedule, error) {
	tasks, err := s.validate(ctx, payload)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := s.buildGraph(ctx, tasks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order, err := s.sort(ctx, g)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, span := s.tracer.Start(ctx, domain.SpanMetrics)
	metrics := domain.ComputeMetrics(g.Walk())
	span.End()

	return &domain.Schedule{
		ProjectID:        projectID,
		RecommendedOrder: order,
		Metrics:          metrics,
		Unresolved:       g.Unresolved(),
	}, nil
}

func (s *Scheduler) validate(ctx context.Context, payload []byte) ([]domain.Task, error) {
	_, span := s.tracer.Start(ctx, domain.SpanValidate)
	defer span.End()

	tasks, err := s.validator.Validate(payload)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute(domain.AttrTasks, len(tasks))
	return tasks, nil
}

func (s *Scheduler) buildGraph(ctx context.Context, tasks []domain.Task) *domain.Graph {
	_, span := s.tracer.Start(ctx, domain.SpanBuildGraph)
	defer span.End()

	g := domain.NewGraph(tasks)
	span.SetAttribute(domain.AttrEdges, g.Edges())
	span.SetAttribute(domain.AttrUnresolved, len(g.Unresolved()))

	for _, u := range g.Unresolved() {
		s.logger.Debug(fmt.Sprintf("task %q depends on unknown task %q, ignoring", u.Task, u.Dependency))
	}
	return g
}

func (s *Scheduler) sort(ctx context.Context, g *domain.Graph) ([]string, error) {
	_, span := s.tracer.Start(ctx, domain.SpanSort)
	defer span.End()

	order, err := g.Order()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return order, nil
}
