package resumefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `name: Jordan Avery
title: Technical Integrations Specialist
email: jordan.avery@email.com
phone: (555) 123-4567
location: Dallas, TX
links:
  - linkedin.com/in/jordanavery
summary: >
  Integration-focused specialist.
skills: [APIs, Python, SQL]
experience:
  - role: Sr. Partner Integrations Specialist
    company: DoorDash (Contract)
    dates: Jul 2024 – Dec 2024
    location: Remote
    bullets:
      - Owned technical onboarding.
  - role: Mentor
    organization: Code for Dallas
education:
  - degree: B.S. Information Systems
    school: State University
    grad: 2019
certifications:
  - AWS Certified Cloud Practitioner
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	r, err := Load(writeFile(t, "resume.yaml", sampleYAML))

	require.NoError(t, err)
	assert.Equal(t, "Jordan Avery", r.Name)
	assert.Equal(t, "Integration-focused specialist.\n", r.Summary)
	assert.Equal(t, []string{"APIs", "Python", "SQL"}, r.Skills)
	require.Len(t, r.Experience, 2)
	assert.Equal(t, "DoorDash (Contract)", r.Experience[0].Employer())
	assert.Equal(t, "Code for Dallas", r.Experience[1].Employer())
	require.Len(t, r.Education, 1)
	assert.Equal(t, "2019", r.Education[0].Grad, "unquoted years are read as strings")
	assert.Equal(t, "Jordan_Avery_resume.pdf", r.PDFFileName())
}

func TestLoad_JSON(t *testing.T) {
	r, err := Load(writeFile(t, "resume.json", `{"name": "Jane Doe", "skills": ["Go"]}`))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", r.Name)
	assert.Equal(t, []string{"Go"}, r.Skills)
}

func TestLoad_YMLExtensionAndNulls(t *testing.T) {
	r, err := Load(writeFile(t, "resume.yml", "name: Jane Doe\nsummary:\nlinks:\nstarted: 2020-01-02\n"))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", r.Name)
	assert.Empty(t, r.Summary)
	assert.Empty(t, r.Links)
}

func TestLoad_SchemaViolation(t *testing.T) {
	path := writeFile(t, "resume.yaml", "title: No name here\n")

	_, err := Load(path)

	require.Error(t, err)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeFile(t, "resume.yaml", "name: [unclosed"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load(writeFile(t, "resume.json", `{"name": `))

	require.Error(t, err)
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecode_EmptyYAML(t *testing.T) {
	_, err := Decode(".yaml", []byte(""))

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr), "name is required")
}
