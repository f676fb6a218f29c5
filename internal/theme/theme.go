// Package theme loads, validates and saves the YAML theme that controls
// page size, margins, fonts, colours, sizes, labels and section order.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the theme file used when none is configured.
const DefaultPath = "theme.yaml"

// Section names accepted in SectionOrder.
const (
	SectionHeader         = "header"
	SectionSummary        = "summary"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionExperience     = "experience"
	SectionCertifications = "certifications"
)

// Page sizes.
const (
	PageLetter = "LETTER"
	PageA4     = "A4"
)

// Theme is the document styling configuration.
type Theme struct {
	PageSize     string   `yaml:"page_size" json:"page_size" validate:"oneof=LETTER A4"`
	MarginsIn    Margins  `yaml:"margins_in" json:"margins_in"`
	Fonts        Fonts    `yaml:"fonts" json:"fonts"`
	Colors       Colors   `yaml:"colors" json:"colors"`
	Sizes        Sizes    `yaml:"sizes" json:"sizes"`
	Labels       Labels   `yaml:"labels" json:"labels"`
	SectionOrder []string `yaml:"section_order" json:"section_order" validate:"min=1,unique,dive,oneof=header summary education skills experience certifications"`
}

// Margins are page margins in inches.
type Margins struct {
	Left   float64 `yaml:"left" json:"left" validate:"gte=0,lt=4"`
	Right  float64 `yaml:"right" json:"right" validate:"gte=0,lt=4"`
	Top    float64 `yaml:"top" json:"top" validate:"gte=0,lt=4"`
	Bottom float64 `yaml:"bottom" json:"bottom" validate:"gte=0,lt=4"`
}

// Fonts selects built-in fonts, or TrueType files when PreferTTF is set
// and both files exist.
type Fonts struct {
	PreferTTF  bool   `yaml:"prefer_ttf" json:"prefer_ttf"`
	Base       string `yaml:"base" json:"base" validate:"required"`
	Bold       string `yaml:"bold" json:"bold" validate:"required"`
	TTFRegular string `yaml:"ttf_regular" json:"ttf_regular"`
	TTFBold    string `yaml:"ttf_bold" json:"ttf_bold"`
}

// Colors are #RRGGBB hex strings.
type Colors struct {
	AccentHex string `yaml:"accent_hex" json:"accent_hex" validate:"hexcolor"`
	TextHex   string `yaml:"text_hex" json:"text_hex" validate:"hexcolor"`
	MutedHex  string `yaml:"muted_hex" json:"muted_hex" validate:"hexcolor"`
}

// Sizes are font sizes in points. Line leading is size + LeadingAdjust.
type Sizes struct {
	H1            float64 `yaml:"h1" json:"h1" validate:"gt=0"`
	H2            float64 `yaml:"h2" json:"h2" validate:"gt=0"`
	Body          float64 `yaml:"body" json:"body" validate:"gt=0"`
	Meta          float64 `yaml:"meta" json:"meta" validate:"gt=0"`
	LeadingAdjust float64 `yaml:"leading_adjust" json:"leading_adjust" validate:"gte=0"`
}

// Labels are the section headings.
type Labels struct {
	Summary        string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Skills         string `yaml:"skills,omitempty" json:"skills,omitempty"`
	Experience     string `yaml:"experience,omitempty" json:"experience,omitempty"`
	Education      string `yaml:"education,omitempty" json:"education,omitempty"`
	Certifications string `yaml:"certifications,omitempty" json:"certifications,omitempty"`
}

var defaultLabels = map[string]string{
	SectionSummary:        "SUMMARY",
	SectionSkills:         "SKILLS AND SOFTWARE PROFICIENCIES",
	SectionExperience:     "RELEVANT EXPERIENCES",
	SectionEducation:      "EDUCATION",
	SectionCertifications: "CERTIFICATIONS",
}

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{
		PageSize:  PageLetter,
		MarginsIn: Margins{Left: 0.7, Right: 0.7, Top: 0.7, Bottom: 0.7},
		Fonts: Fonts{
			Base:       "Helvetica",
			Bold:       "Helvetica-Bold",
			TTFRegular: "Inter-Regular.ttf",
			TTFBold:    "Inter-Bold.ttf",
		},
		Colors: Colors{AccentHex: "#000000", TextHex: "#000000", MutedHex: "#444444"},
		Sizes:  Sizes{H1: 18, H2: 12, Body: 10.5, Meta: 9.5, LeadingAdjust: 2},
		SectionOrder: []string{
			SectionHeader, SectionSummary, SectionEducation,
			SectionSkills, SectionExperience, SectionCertifications,
		},
	}
}

// Load reads a theme file over the defaults. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*Theme, error) {
	t := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read theme file %s", path), Cause: err}
	}

	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to parse theme file %s", path), Cause: err}
	}
	t.normalize()
	if len(t.SectionOrder) == 0 {
		t.SectionOrder = Default().SectionOrder
	}

	return t, nil
}

// Save validates t and writes it to path as YAML, creating parent directories.
func Save(path string, t *Theme) error {
	if path == "" {
		path = DefaultPath
	}
	if err := t.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create theme directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write theme file %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges, colours and section names.
func (t *Theme) Validate() error {
	t.normalize()
	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return &ValidationError{Cause: err}
	}
	return nil
}

func (t *Theme) normalize() {
	t.PageSize = strings.ToUpper(strings.TrimSpace(t.PageSize))
	if t.PageSize == "" {
		t.PageSize = PageLetter
	}
}

// Label returns the heading for a section, falling back to the built-in label.
func (t *Theme) Label(section string) string {
	var custom string
	switch section {
	case SectionSummary:
		custom = t.Labels.Summary
	case SectionSkills:
		custom = t.Labels.Skills
	case SectionExperience:
		custom = t.Labels.Experience
	case SectionEducation:
		custom = t.Labels.Education
	case SectionCertifications:
		custom = t.Labels.Certifications
	}
	if custom != "" {
		return custom
	}
	return defaultLabels[section]
}

// UseTTF reports whether the TrueType fonts should be used: PreferTTF is
// set and both font files exist. Otherwise the built-in fonts apply.
func (t *Theme) UseTTF() bool {
	if !t.Fonts.PreferTTF {
		return false
	}
	return fileExists(t.Fonts.TTFRegular) && fileExists(t.Fonts.TTFBold)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
