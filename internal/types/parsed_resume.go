// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ParsedResume is the structured record extracted from an uploaded document.
// Only name, summary, skills and experience carry decoded content; education
// is always empty and is filled in later by hand.
type ParsedResume struct {
	Name       string            `json:"name,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Skills     []string          `json:"skills,omitempty"`
	Experience []JobRecord       `json:"experience"`
	Education  []EducationRecord `json:"education"`
}

// JobRecord is one decoded experience entry
type JobRecord struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Dates    string   `json:"dates"`
	Location string   `json:"location"`
	Bullets  []string `json:"bullets"`
}

// IsEmpty reports whether the record has neither a role nor any bullets.
func (j *JobRecord) IsEmpty() bool {
	return j.Role == "" && len(j.Bullets) == 0
}

// EducationRecord has the same shape as Education; the parser never fills it.
type EducationRecord = Education

// NewParsedResume returns a record with non-nil experience and education slices.
func NewParsedResume() *ParsedResume {
	return &ParsedResume{
		Experience: []JobRecord{},
		Education:  []EducationRecord{},
	}
}

// ToResume maps the parse result onto the full render record. Keys the parser
// never populates (title, email, phone, location, links, certifications) are blank.
func (p *ParsedResume) ToResume() *Resume {
	r := &Resume{
		Name:           p.Name,
		Summary:        p.Summary,
		Links:          []string{},
		Skills:         append([]string{}, p.Skills...),
		Experience:     make([]Experience, 0, len(p.Experience)),
		Education:      append([]Education{}, p.Education...),
		Certifications: []string{},
	}

	for _, job := range p.Experience {
		r.Experience = append(r.Experience, Experience{
			Role:     job.Role,
			Company:  job.Company,
			Dates:    job.Dates,
			Location: job.Location,
			Bullets:  append([]string{}, job.Bullets...),
		})
	}

	return r
}
