package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cadence/internal/adapters/logger"
	"go.trai.ch/cadence/internal/app"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/core/ports"
	"go.trai.ch/cadence/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const (
	linearPayload = `{"tasks": [
		{"title": "B", "estimatedHours": 2, "dueDate": "2025-01-02", "dependencies": ["A"]},
		{"title": "A", "estimatedHours": 1.5, "dueDate": "2025-01-01"}
	]}`
	cyclePayload = `{"tasks": [
		{"title": "A", "estimatedHours": 1, "dueDate": "2025-01-01", "dependencies": ["B"]},
		{"title": "B", "estimatedHours": 1, "dueDate": "2025-01-01", "dependencies": ["A"]}
	]}`
)

type appTestMocks struct {
	config   *mocks.MockConfigLoader
	payloads *mocks.MockPayloadLoader
	watcher  *mocks.MockWatcher
	logger   *mocks.MockLogger
}

func setupApp(t *testing.T) (*app.App, *bytes.Buffer, appTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appTestMocks{
		config:   mocks.NewMockConfigLoader(ctrl),
		payloads: mocks.NewMockPayloadLoader(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	var out bytes.Buffer
	a := app.New(m.config, m.payloads, m.watcher, m.logger).WithIO(strings.NewReader(""), &out)
	return a, &out, m
}

type jsonResult struct {
	Source           string   `json:"source"`
	Error            string   `json:"error"`
	ProjectID        string   `json:"projectId"`
	RecommendedOrder []string `json:"recommendedOrder"`
}

func decodeResults(t *testing.T, r io.Reader) []jsonResult {
	t.Helper()
	var results []jsonResult
	dec := json.NewDecoder(r)
	for {
		var res jsonResult
		err := dec.Decode(&res)
		if errors.Is(err, io.EOF) {
			return results
		}
		require.NoError(t, err)
		results = append(results, res)
	}
}

func TestApp_Configure_Overrides(t *testing.T) {
	a, _, m := setupApp(t)
	m.config.EXPECT().Load("cadence.yaml").Return(domain.DefaultConfig(), nil)

	cfg, err := a.Configure(app.Options{ConfigPath: "cadence.yaml", JSONLogs: true, Trace: true})
	require.NoError(t, err)

	assert.Equal(t, domain.LogFormatJSON, cfg.Log.Format)
	assert.True(t, cfg.Log.Verbose)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestApp_Configure_Defaults(t *testing.T) {
	a, _, m := setupApp(t)
	m.config.EXPECT().Load("").Return(domain.DefaultConfig(), nil)

	cfg, err := a.Configure(app.Options{})
	require.NoError(t, err)

	assert.Equal(t, domain.LogFormatPretty, cfg.Log.Format)
	assert.False(t, cfg.Log.Verbose)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestApp_Configure_LoadError(t *testing.T) {
	a, _, m := setupApp(t)
	m.config.EXPECT().Load("missing.yaml").Return(nil, domain.ErrConfigNotFound)

	cfg, err := a.Configure(app.Options{ConfigPath: "missing.yaml"})
	require.Error(t, err)
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Configure_SwitchesLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)

	var logs bytes.Buffer
	log := logger.New()
	log.(*logger.Logger).SetOutput(&logs)

	a := app.New(loader, mocks.NewMockPayloadLoader(ctrl), mocks.NewMockWatcher(ctrl), log)
	_, err := a.Configure(app.Options{JSONLogs: true, Verbose: true})
	require.NoError(t, err)

	log.Debug("switched")
	assert.Contains(t, logs.String(), `"msg":"switched"`)
	assert.Contains(t, logs.String(), `"level":"DEBUG"`)
}

func TestApp_Schedule_ResultsInArgumentOrder(t *testing.T) {
	a, out, m := setupApp(t)
	m.payloads.EXPECT().Load("plans/alpha.json").Return([]byte(linearPayload), nil)
	m.payloads.EXPECT().Load("plans/beta.yaml").Return([]byte(cyclePayload), nil)
	m.payloads.EXPECT().Load("plans/gamma.hcl").Return([]byte(linearPayload), nil)

	files := []string{"plans/alpha.json", "plans/beta.yaml", "plans/gamma.hcl"}
	err := a.Schedule(context.Background(), domain.DefaultConfig(), files, app.ScheduleOptions{Output: domain.OutputJSON})
	require.ErrorIs(t, err, domain.ErrScheduleFailed)
	assert.Contains(t, err.Error(), "1 of 3 task file(s) could not be scheduled")

	results := decodeResults(t, out)
	require.Len(t, results, 3)

	assert.Equal(t, "alpha", results[0].ProjectID)
	assert.Equal(t, []string{"A", "B"}, results[0].RecommendedOrder)

	assert.Equal(t, "plans/beta.yaml", results[1].Source)
	assert.Equal(t, "Circular dependency detected in tasks", results[1].Error)

	assert.Equal(t, "gamma", results[2].ProjectID)
}

func TestApp_Schedule_ExplicitProjectID(t *testing.T) {
	a, out, m := setupApp(t)
	m.payloads.EXPECT().Load("one.json").Return([]byte(linearPayload), nil)
	m.payloads.EXPECT().Load("two.json").Return([]byte(linearPayload), nil)

	err := a.Schedule(context.Background(), domain.DefaultConfig(), []string{"one.json", "two.json"},
		app.ScheduleOptions{ProjectID: "demo", Output: domain.OutputJSON})
	require.NoError(t, err)

	results := decodeResults(t, out)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, "demo", res.ProjectID)
	}
}

func TestApp_Schedule_Stdin(t *testing.T) {
	a, out, m := setupApp(t)
	stdin := strings.NewReader(linearPayload)
	a.WithIO(stdin, out)
	m.payloads.EXPECT().Read(domain.StdinPath, stdin).Return([]byte(linearPayload), nil)

	err := a.Schedule(context.Background(), domain.DefaultConfig(), []string{domain.StdinPath},
		app.ScheduleOptions{Output: domain.OutputJSON})
	require.NoError(t, err)

	results := decodeResults(t, out)
	require.Len(t, results, 1)
	assert.Equal(t, "stdin", results[0].ProjectID)
}

func TestApp_Schedule_TextOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	a, out, m := setupApp(t)
	m.payloads.EXPECT().Load("demo.json").Return([]byte(linearPayload), nil)
	m.payloads.EXPECT().Load("broken.yaml").Return(nil, domain.ErrPayloadParseFailed)

	err := a.Schedule(context.Background(), domain.DefaultConfig(), []string{"demo.json", "broken.yaml"}, app.ScheduleOptions{})
	require.ErrorIs(t, err, domain.ErrScheduleFailed)

	text := out.String()
	assert.Contains(t, text, "demo.json")
	assert.Contains(t, text, "Tasks scheduled successfully")
	assert.Contains(t, text, "broken.yaml")
	assert.Contains(t, text, "failed to parse task file")
	assert.Less(t, strings.Index(text, "demo.json"), strings.Index(text, "broken.yaml"))
}

func TestApp_Schedule_StrictDependencies(t *testing.T) {
	a, out, m := setupApp(t)
	m.payloads.EXPECT().Load("ghost.json").Return([]byte(`{"tasks": [
		{"title": "A", "estimatedHours": 1, "dueDate": "2025-01-01", "dependencies": ["ghost"]}
	]}`), nil)

	cfg := domain.DefaultConfig()
	cfg.Scheduler.StrictDependencies = true

	err := a.Schedule(context.Background(), cfg, []string{"ghost.json"}, app.ScheduleOptions{Output: domain.OutputJSON})
	require.ErrorIs(t, err, domain.ErrScheduleFailed)

	results := decodeResults(t, out)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Error)
}

func TestApp_Schedule_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		opts  app.ScheduleOptions
		want  error
	}{
		{name: "no files", files: nil, want: domain.ErrNoInputFiles},
		{name: "unknown output", files: []string{"a.json"}, opts: app.ScheduleOptions{Output: "xml"}, want: domain.ErrUnsupportedOutput},
		{name: "watch stdin", files: []string{"a.json", domain.StdinPath}, opts: app.ScheduleOptions{Watch: true}, want: domain.ErrWatchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out, _ := setupApp(t)

			err := a.Schedule(context.Background(), domain.DefaultConfig(), tt.files, tt.opts)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, out.String())
		})
	}
}

func TestApp_Schedule_Watch(t *testing.T) {
	a, out, m := setupApp(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(file, []byte(linearPayload), 0o600))

	m.payloads.EXPECT().Load(file).Return([]byte(linearPayload), nil).Times(2)
	m.payloads.EXPECT().Load(file).Return([]byte(cyclePayload), nil)
	m.watcher.EXPECT().Start(gomock.Any(), []string{file}).Return(nil)
	m.watcher.EXPECT().Stop().Return(nil)
	m.watcher.EXPECT().Events().Return(seq(
		ports.WatchEvent{Path: file, Operation: ports.OpWrite},
		ports.WatchEvent{Path: filepath.Join(dir, "other.json"), Operation: ports.OpWrite},
		ports.WatchEvent{Path: file, Operation: ports.OpRemove},
		ports.WatchEvent{Path: file, Operation: ports.OpCreate},
	))
	m.logger.EXPECT().Info("watching 1 task file(s) for changes, press Ctrl+C to stop")
	m.logger.EXPECT().Warn(file + " was removed, waiting for it to reappear")

	err := a.Schedule(context.Background(), domain.DefaultConfig(), []string{file},
		app.ScheduleOptions{Output: domain.OutputJSON, Watch: true})
	require.NoError(t, err)

	results := decodeResults(t, out)
	require.Len(t, results, 3)
	assert.Equal(t, "plan", results[0].ProjectID)
	assert.Equal(t, "plan", results[1].ProjectID)
	assert.Equal(t, "Circular dependency detected in tasks", results[2].Error)
}

func TestApp_Schedule_WatchStartFails(t *testing.T) {
	a, _, m := setupApp(t)
	m.payloads.EXPECT().Load("plan.json").Return([]byte(linearPayload), nil)
	m.watcher.EXPECT().Start(gomock.Any(), []string{"plan.json"}).Return(domain.ErrWatchFailed)

	err := a.Schedule(context.Background(), domain.DefaultConfig(), []string{"plan.json"},
		app.ScheduleOptions{Output: domain.OutputJSON, Watch: true})
	require.ErrorIs(t, err, domain.ErrWatchFailed)
}

func seq(events ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
		}
	}
}
