// Package schemas embeds the JSON Schema documents for the résumé records.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	Resume       = "resume.schema.json"
	ParsedResume = "parsed_resume.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return string(data), nil
}

// Names lists the embedded schema files.
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
