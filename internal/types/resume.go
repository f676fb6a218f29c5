// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Resume is the render record consumed by the PDF renderer.
// It mirrors the mapping produced by the editing surface.
type Resume struct {
	Name           string       `json:"name" yaml:"name"`
	Title          string       `json:"title,omitempty" yaml:"title,omitempty"`
	Email          string       `json:"email,omitempty" yaml:"email,omitempty"`
	Phone          string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location       string       `json:"location,omitempty" yaml:"location,omitempty"`
	Links          []string     `json:"links" yaml:"links"`
	Summary        string       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Skills         []string     `json:"skills" yaml:"skills"`
	Experience     []Experience `json:"experience" yaml:"experience"`
	Education      []Education  `json:"education" yaml:"education"`
	Certifications []string     `json:"certifications" yaml:"certifications"`
}

// Experience represents a single job entry on the rendered resume
type Experience struct {
	Role         string   `json:"role" yaml:"role"`
	Company      string   `json:"company" yaml:"company"`
	Organization string   `json:"organization,omitempty" yaml:"organization,omitempty"`
	Dates        string   `json:"dates" yaml:"dates"`
	Location     string   `json:"location" yaml:"location"`
	Bullets      []string `json:"bullets" yaml:"bullets"`
}

// Employer returns the company name, falling back to the organization field.
func (e Experience) Employer() string {
	if e.Company != "" {
		return e.Company
	}
	return e.Organization
}

// Education represents a single education entry
type Education struct {
	Degree   string `json:"degree" yaml:"degree"`
	School   string `json:"school" yaml:"school"`
	Location string `json:"location" yaml:"location"`
	Dates    string `json:"dates" yaml:"dates"`
	Grad     string `json:"grad,omitempty" yaml:"grad,omitempty"`
}

// Graduation returns the graduation label, preferring Grad over Dates.
func (e Education) Graduation() string {
	if e.Grad != "" {
		return e.Grad
	}
	return e.Dates
}

// FileBaseName returns the name used for generated files, e.g. "Jane_Doe".
// Falls back to "resume" when the name is blank.
func (r *Resume) FileBaseName() string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "resume"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// PDFFileName returns "<name>_resume.pdf".
func (r *Resume) PDFFileName() string {
	return r.FileBaseName() + "_resume.pdf"
}
