package payload_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cadence/internal/adapters/payload"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/zerr"
)

const expectedPayload = `{
  "tasks": [
    {"title": "Design API", "estimatedHours": 5, "dueDate": "2025-10-25", "dependencies": []},
    {"title": "Implement Backend", "estimatedHours": 12, "dueDate": "2025-10-28", "dependencies": ["Design API"]}
  ]
}`

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "JSON passthrough", file: "tasks.json"},
		{name: "YAML", file: "tasks.yaml"},
		{name: "HCL", file: "tasks.hcl"},
	}

	loader := payload.NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := loader.Load(filepath.Join("testdata", tt.file))
			require.NoError(t, err)
			assert.JSONEq(t, expectedPayload, string(data))
		})
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		sentinel error
	}{
		{name: "Unsupported extension", file: "tasks.toml", sentinel: domain.ErrUnsupportedFormat},
		{name: "Missing file", file: "missing.json"},
		{name: "Broken YAML", file: "broken.yaml"},
		{name: "Broken HCL", file: "broken.hcl"},
	}

	loader := payload.NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join("testdata", tt.file)
			data, err := loader.Load(path)
			require.Error(t, err)
			assert.Nil(t, data)

			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel))
			}

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, path, zErr.Metadata()["path"])
		})
	}
}

func TestLoader_Load_ErrorMessages(t *testing.T) {
	loader := payload.NewLoader()

	_, err := loader.Load(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.Equal(t, domain.ErrPayloadReadFailed.Error(), domain.ClientMessage(err))

	_, err = loader.Load(filepath.Join("testdata", "broken.yaml"))
	require.Error(t, err)
	assert.Equal(t, domain.ErrPayloadParseFailed.Error(), domain.ClientMessage(err))
}

func TestLoader_Load_YAMLUnquotedDate(t *testing.T) {
	data, err := payload.NewLoader().Load(filepath.Join("testdata", "unquoted_dates.yaml"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[
		{"title":"Design API","estimatedHours":1.5,"dueDate":"2025-10-25"},
		{"title":"Implement Backend","estimatedHours":2,"dueDate":"2025-10-26T10:00:00+02:00","dependencies":["Design API"]}
	]}`, string(data))
}

func TestLoader_Load_HCLPassesValuesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.hcl")
	writeFile(t, path, `task "A" {
  estimatedHours = "five"
  dueDate        = null
  extra          = { nested = true }
}
`)

	data, err := payload.NewLoader().Load(path)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"tasks":[{"title":"A","estimatedHours":"five","dueDate":null,"extra":{"nested":true}}]}`,
		string(data))
}

func TestLoader_Load_EmptyDocuments(t *testing.T) {
	dir := t.TempDir()
	loader := payload.NewLoader()

	yamlPath := filepath.Join(dir, "empty.yaml")
	writeFile(t, yamlPath, "")
	data, err := loader.Load(yamlPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	hclPath := filepath.Join(dir, "empty.hcl")
	writeFile(t, hclPath, "")
	data, err = loader.Load(hclPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[]}`, string(data))
}

func TestLoader_Read(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "JSON object",
			input:    `  {"tasks": []}`,
			expected: `{"tasks": []}`,
		},
		{
			name:     "JSON array is passed through",
			input:    `[1, 2]`,
			expected: `[1, 2]`,
		},
		{
			name:     "YAML",
			input:    "tasks:\n  - title: A\n    estimatedHours: 2\n",
			expected: `{"tasks":[{"title":"A","estimatedHours":2}]}`,
		},
	}

	loader := payload.NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := loader.Read(domain.StdinPath, strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestLoader_Read_InvalidYAML(t *testing.T) {
	_, err := payload.NewLoader().Read(domain.StdinPath, strings.NewReader("tasks: [unclosed\n"))
	require.Error(t, err)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, domain.StdinPath, zErr.Metadata()["path"])
}
