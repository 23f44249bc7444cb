package linear_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cadence/internal/adapters/linear"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*linear.Renderer)(nil)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func exampleSchedule() *domain.Schedule {
	return &domain.Schedule{
		ProjectID:        "42",
		RecommendedOrder: []string{"Design API", "Implement Backend", "Build Frontend", "End-to-End Test"},
		Metrics: domain.Metrics{
			TotalTasks:          4,
			TotalEstimatedHours: 35,
			EarliestDueDate:     day("2025-10-25"),
			LatestDueDate:       day("2025-10-31"),
		},
	}
}

func cycleError(t *testing.T) error {
	t.Helper()
	_, err := domain.NewGraph([]domain.Task{
		{Title: "A", EstimatedHours: 1, DueDate: day("2025-01-01"), Dependencies: []string{"B"}},
		{Title: "B", EstimatedHours: 1, DueDate: day("2025-01-01"), Dependencies: []string{"A"}},
	}).Order()
	require.Error(t, err)
	return err
}

func newRenderer(t *testing.T, format string) *linear.Renderer {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	r, err := linear.NewRenderer(format)
	require.NoError(t, err)
	return r
}

func TestRenderer_RenderSchedule(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		source     string
		schedule   *domain.Schedule
		goldenName string
	}{
		{
			name:       "text",
			format:     domain.OutputText,
			source:     "tasks.json",
			schedule:   exampleSchedule(),
			goldenName: "schedule_text",
		},
		{
			name:   "text with unresolved dependency",
			format: domain.OutputText,
			source: domain.StdinPath,
			schedule: &domain.Schedule{
				ProjectID:        "demo",
				RecommendedOrder: []string{"A", "B"},
				Metrics: domain.Metrics{
					TotalTasks:          2,
					TotalEstimatedHours: 3.5,
					EarliestDueDate:     day("2025-01-01"),
					LatestDueDate:       day("2025-01-02"),
				},
				Unresolved: []domain.UnresolvedDependency{{Task: "B", Dependency: "ghost"}},
			},
			goldenName: "schedule_text_unresolved",
		},
		{
			name:       "json",
			format:     domain.OutputJSON,
			source:     "tasks.json",
			schedule:   exampleSchedule(),
			goldenName: "schedule_json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, tt.format)

			var buf bytes.Buffer
			require.NoError(t, r.RenderSchedule(&buf, tt.source, tt.schedule))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestRenderer_RenderFailure(t *testing.T) {
	readErr := zerr.With(
		zerr.Wrap(errors.New("open missing.json: no such file or directory"), domain.ErrPayloadReadFailed.Error()),
		"path", "missing.json",
	)

	tests := []struct {
		name       string
		format     string
		source     string
		err        error
		goldenName string
	}{
		{name: "cycle text", format: domain.OutputText, source: "cycle.json", err: cycleError(t), goldenName: "failure_cycle_text"},
		{name: "read text", format: domain.OutputText, source: "missing.json", err: readErr, goldenName: "failure_read_text"},
		{name: "cycle json", format: domain.OutputJSON, source: "cycle.json", err: cycleError(t), goldenName: "failure_cycle_json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, tt.format)

			var buf bytes.Buffer
			require.NoError(t, r.RenderFailure(&buf, tt.source, tt.err))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestRenderer_RenderFailure_PlainError(t *testing.T) {
	r := newRenderer(t, domain.OutputText)

	var buf bytes.Buffer
	require.NoError(t, r.RenderFailure(&buf, "x.json", errors.New("boom")))
	assert.Equal(t, "✗ x.json  boom\n", buf.String())
}

func TestRenderer_WideNumbering(t *testing.T) {
	r := newRenderer(t, domain.OutputText)

	s := exampleSchedule()
	s.RecommendedOrder = []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10"}

	var buf bytes.Buffer
	require.NoError(t, r.RenderSchedule(&buf, "many.json", s))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "   1. t1", lines[1])
	assert.Equal(t, "  10. t10", lines[10])
}

func TestNewRenderer(t *testing.T) {
	r, err := linear.NewRenderer("")
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = linear.NewRenderer("yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOutput)
	assert.Equal(t, `unknown output format "yaml"`, domain.ClientMessage(err))
}
