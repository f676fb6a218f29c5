package theme

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set assigns a YAML value to a dotted key such as "colors.accent_hex" or
// "section_order" and returns the updated theme. The value is parsed as
// YAML, so "0.5", "true" and "[header, summary]" keep their types.
// t is left unchanged if the key is unknown or the result is invalid.
func Set(t *Theme, key, value string) (*Theme, error) {
	path := strings.Split(key, ".")
	if key == "" || len(path) > 2 {
		return nil, fmt.Errorf("unknown theme key %q", key)
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if parsed == nil {
		// "#rrggbb" parses as a YAML comment
		parsed = value
	}

	raw, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal theme: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode theme: %w", err)
	}

	if len(path) == 1 {
		if _, ok := doc[path[0]]; !ok {
			return nil, fmt.Errorf("unknown theme key %q", key)
		}
		doc[path[0]] = parsed
	} else {
		group, ok := doc[path[0]].(map[string]any)
		if !ok {
			// labels is omitted entirely when no custom label is set
			if path[0] != "labels" {
				return nil, fmt.Errorf("unknown theme key %q", key)
			}
			group = map[string]any{}
		}
		if _, known := group[path[1]]; !known && !isLabelKey(path) {
			return nil, fmt.Errorf("unknown theme key %q", key)
		}
		group[path[1]] = parsed
		doc[path[0]] = group
	}

	raw, err = yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal theme: %w", err)
	}
	updated := &Theme{}
	if err := yaml.Unmarshal(raw, updated); err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	return updated, nil
}

func isLabelKey(path []string) bool {
	if path[0] != "labels" {
		return false
	}
	_, ok := defaultLabels[path[1]]
	return ok
}
