package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsedResume_EmptyCollections(t *testing.T) {
	p := NewParsedResume()

	data, err := json.Marshal(p)
	require.NoError(t, err)

	// name, summary and skills are absent; experience and education are empty lists
	assert.JSONEq(t, `{"experience": [], "education": []}`, string(data))
}

func TestJobRecord_IsEmpty(t *testing.T) {
	assert.True(t, (&JobRecord{}).IsEmpty())
	assert.True(t, (&JobRecord{Company: "Acme"}).IsEmpty(), "company alone does not make a record")
	assert.False(t, (&JobRecord{Role: "Engineer"}).IsEmpty())
	assert.False(t, (&JobRecord{Bullets: []string{"Shipped it"}}).IsEmpty())
}

func TestParsedResume_ToResume(t *testing.T) {
	p := &ParsedResume{
		Name:    "Jane Doe",
		Summary: "Engineer who ships.",
		Skills:  []string{"Go", "SQL"},
		Experience: []JobRecord{
			{Role: "Senior Engineer", Company: "Acme Corp", Bullets: []string{"Led onboarding"}},
		},
		Education: []EducationRecord{},
	}

	r := p.ToResume()

	assert.Equal(t, "Jane Doe", r.Name)
	assert.Equal(t, "Engineer who ships.", r.Summary)
	assert.Equal(t, []string{"Go", "SQL"}, r.Skills)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, "Senior Engineer", r.Experience[0].Role)
	assert.Equal(t, "Acme Corp", r.Experience[0].Company)
	assert.Equal(t, []string{"Led onboarding"}, r.Experience[0].Bullets)
	assert.Empty(t, r.Title)
	assert.Empty(t, r.Email)
	assert.NotNil(t, r.Links)
	assert.NotNil(t, r.Certifications)
	assert.Empty(t, r.Education)

	// the render record must not alias the parse result
	r.Experience[0].Bullets[0] = "changed"
	assert.Equal(t, "Led onboarding", p.Experience[0].Bullets[0])
}
