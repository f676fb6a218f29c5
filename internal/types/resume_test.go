package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_FileBaseName(t *testing.T) {
	tests := []struct {
		name     string
		resume   Resume
		expected string
	}{
		{name: "spaces replaced", resume: Resume{Name: "Jordan Avery"}, expected: "Jordan_Avery"},
		{name: "blank falls back", resume: Resume{Name: "   "}, expected: "resume"},
		{name: "single word", resume: Resume{Name: "Cher"}, expected: "Cher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resume.FileBaseName())
		})
	}
}

func TestResume_PDFFileName(t *testing.T) {
	r := &Resume{Name: "Jordan Avery"}
	assert.Equal(t, "Jordan_Avery_resume.pdf", r.PDFFileName())
}

func TestExperience_Employer(t *testing.T) {
	assert.Equal(t, "Acme", Experience{Company: "Acme", Organization: "Other"}.Employer())
	assert.Equal(t, "Red Cross", Experience{Organization: "Red Cross"}.Employer())
	assert.Empty(t, Experience{}.Employer())
}

func TestEducation_Graduation(t *testing.T) {
	assert.Equal(t, "May 2019", Education{Grad: "May 2019", Dates: "2015 – 2019"}.Graduation())
	assert.Equal(t, "2015 – 2019", Education{Dates: "2015 – 2019"}.Graduation())
}

func TestResume_JSONKeys(t *testing.T) {
	r := Resume{
		Name:           "Jordan Avery",
		Title:          "Technical Integrations Specialist",
		Links:          []string{"github.com/jordanavery"},
		Skills:         []string{"Go"},
		Experience:     []Experience{},
		Education:      []Education{},
		Certifications: []string{},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"name", "title", "links", "skills", "experience", "education", "certifications"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "email", "empty email should be omitted")
}
