// Package payload reads task files in JSON, YAML or HCL and converts them into
// scheduling request payloads.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.PayloadLoader.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the task file at path. The decoder is chosen by extension:
// .json is passed through, .yaml and .yml are converted from YAML and .hcl
// from HCL task blocks.
func (l *Loader) Load(path string) ([]byte, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPayloadReadFailed.Error()), "path", path)
	}

	out, err := decode(path, data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return out, nil
}

// Read decodes a task document from r. Documents starting with '{' or '[' are
// passed through as JSON, anything else is read as YAML.
func (l *Loader) Read(name string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPayloadReadFailed.Error()), "path", name)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return data, nil
	}

	out, err := fromYAML(name, data)
	if err != nil {
		return nil, zerr.With(err, "path", name)
	}
	return out, nil
}

type decodeFunc func(name string, data []byte) ([]byte, error)

func decoderFor(path string) (decodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return func(_ string, data []byte) ([]byte, error) { return data, nil }, nil
	case ".yaml", ".yml":
		return fromYAML, nil
	case ".hcl":
		return fromHCL, nil
	default:
		err := zerr.Wrap(domain.ErrUnsupportedFormat, fmt.Sprintf("cannot read tasks from %s", filepath.Base(path)))
		return nil, zerr.With(err, "path", path)
	}
}

// fromYAML converts a YAML document into JSON.
// Unquoted dates decode into any as their original text, so they pass through unchanged.
func fromYAML(_ string, data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrPayloadParseFailed.Error())
	}
	if doc == nil {
		doc = map[string]any{}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrPayloadParseFailed.Error())
	}
	return out, nil
}
