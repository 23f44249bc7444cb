package ports

import (
	"context"

	"go.trai.ch/cadence/internal/core/domain"
)

// Scheduler orders the tasks of one scheduling request.
//
//go:generate mockgen -source=scheduler.go -destination=mocks/mock_scheduler.go -package=mocks
type Scheduler interface {
	// Schedule validates payload, orders its tasks and computes metrics.
	// Validation failures wrap domain.ErrValidationFailed; a dependency cycle returns
	// domain.ErrCycleDetected.
	Schedule(ctx context.Context, projectID string, payload []byte) (*domain.Schedule, error)
}
