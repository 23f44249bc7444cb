package ports

import (
	"io"

	"go.trai.ch/cadence/internal/core/domain"
)

// Renderer writes scheduling results for the command line.
type Renderer interface {
	// RenderSchedule writes the successful result for source.
	RenderSchedule(w io.Writer, source string, s *domain.Schedule) error
	// RenderFailure writes the error that prevented source from being scheduled.
	RenderFailure(w io.Writer, source string, err error) error
}
