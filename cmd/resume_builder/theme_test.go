package main

import (
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")

	stdout, _, err := executeCommand(t, "--theme", path, "theme", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	_, _, err = executeCommand(t, "--theme", path, "theme", "init")
	require.Error(t, err, "init refuses to overwrite")
	assert.Contains(t, err.Error(), "--force")

	_, _, err = executeCommand(t, "--theme", path, "theme", "init", "--force")
	require.NoError(t, err)

	_, _, err = executeCommand(t, "--theme", path, "theme", "set", "colors.accent_hex", "#1F4E79")
	require.NoError(t, err)
	_, _, err = executeCommand(t, "--theme", path, "theme", "set", "section_order", "[header, experience, skills]")
	require.NoError(t, err)

	th, err := theme.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#1F4E79", th.Colors.AccentHex)
	assert.Equal(t, []string{"header", "experience", "skills"}, th.SectionOrder)

	stdout, _, err = executeCommand(t, "--theme", path, "theme", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1F4E79")
}

func TestThemeSet_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")

	_, _, err := executeCommand(t, "--theme", path, "theme", "set", "sizes.body", "0")
	require.Error(t, err)

	_, _, err = executeCommand(t, "--theme", path, "theme", "set", "nope", "1")
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestThemeShow_VerbosePrintsBox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")

	stdout, stderr, err := executeCommand(t, "--theme", path, "-v", "theme", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "page_size: LETTER")
	assert.Contains(t, stderr, "THEME")
}
