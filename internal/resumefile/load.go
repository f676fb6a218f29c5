// Package resumefile reads résumé records written by hand as YAML or JSON.
package resumefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"gopkg.in/yaml.v3"
)

// LoadError represents a résumé file that cannot be read, decoded or validated
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("resume file %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads a .yaml, .yml or .json résumé, validates it against the
// resume schema and decodes it.
func Load(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	resume, err := Decode(filepath.Ext(path), data)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return resume, nil
}

// Decode decodes résumé content. ext selects the format; anything other
// than .json is read as YAML, which also accepts JSON.
func Decode(ext string, data []byte) (*types.Resume, error) {
	jsonData := data
	if !strings.EqualFold(ext, ".json") {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
		}
		jsonData = converted
	}

	if err := schemas.ValidateResume(jsonData); err != nil {
		return nil, &LoadError{Message: "does not match the resume schema", Cause: err}
	}

	var resume types.Resume
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	if err := dec.Decode(&resume); err != nil {
		return nil, &LoadError{Message: "failed to decode resume", Cause: err}
	}
	return &resume, nil
}

// yamlToJSON converts a YAML document to JSON. Unquoted scalars such as
// 2019 or yes become strings when the schema expects them to be.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(stringifyScalars(doc))
}

// stringifyScalars turns numbers, booleans and dates inside the document
// into strings and drops null map values. Every leaf in the resume schema
// is a string.
func stringifyScalars(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if val == nil {
				delete(t, k)
				continue
			}
			t[k] = stringifyScalars(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringifyScalars(val)
		}
		return t
	case nil, string:
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	default:
		return fmt.Sprint(t)
	}
}
