package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/resume.tex.tmpl
var defaultTemplate string

// Template delimiters. LaTeX braces make the default {{ }} awkward.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

const metaSeparator = ` \textbullet{} `

// TemplateData is passed to the LaTeX template. All text fields are
// already escaped.
type TemplateData struct {
	Title    string
	Name     string
	Meta     string
	UseTTF   bool
	Page     PageData
	Fonts    FontData
	Colors   ColorData
	Sizes    SizeData
	Sections []SectionData
}

// PageData holds the geometry package options.
type PageData struct {
	Paper  string
	Left   string
	Right  string
	Top    string
	Bottom string
}

// FontData selects fonts. Package is the preamble for built-in fonts;
// Regular and Bold are TrueType file paths used with fontspec.
type FontData struct {
	Package string
	Regular string
	Bold    string
}

// ColorData holds six-digit hex colours without the leading '#'.
type ColorData struct {
	Accent string
	Text   string
	Muted  string
}

// SizeData holds font sizes and leadings in points.
type SizeData struct {
	H1, H1Leading     string
	H2, H2Leading     string
	Body, BodyLeading string
	Meta, MetaLeading string
}

// SectionData is one rendered section. Kind is a theme section name.
type SectionData struct {
	Kind    string
	Label   string
	Text    string
	Jobs    []JobData
	Schools []SchoolData
}

// JobData is one experience entry.
type JobData struct {
	Organization string
	Role         string
	Dates        string
	Location     string
	Bullets      []string
}

// SchoolData is one education entry. Line is "School, Grad".
type SchoolData struct {
	Line     string
	Location string
	Degree   string
}

// RenderLaTeX renders resume as LaTeX source using th for styling.
// An empty templatePath selects the built-in template.
func RenderLaTeX(resume *types.Resume, th *theme.Theme, templatePath string) (string, error) {
	if resume == nil {
		return "", &RenderError{Message: "resume is nil"}
	}
	if th == nil {
		th = theme.Default()
	}

	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}

	data, err := BuildTemplateData(resume, th)
	if err != nil {
		return "", &RenderError{Message: "failed to build template data", Cause: err}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}

	return result.String(), nil
}

// parseTemplate parses the template at templatePath, or the built-in one.
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Message: fmt.Sprintf("template file not found: %s", templatePath),
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", templatePath),
				Cause:   err,
			}
		}
		content = string(raw)
	}

	tmpl, err := template.New("resume").
		Delims(leftDelim, rightDelim).
		Funcs(template.FuncMap{"escape": EscapeLaTeX}).
		Parse(content)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// BuildTemplateData escapes the résumé and lays out its sections in theme order.
// Sections without content are left out.
func BuildTemplateData(resume *types.Resume, th *theme.Theme) (*TemplateData, error) {
	colors, err := buildColors(th.Colors)
	if err != nil {
		return nil, err
	}

	title := resume.Name
	if title == "" {
		title = "Resume"
	}

	data := &TemplateData{
		Title:  EscapeLaTeX(title),
		Name:   EscapeLaTeX(resume.Name),
		Meta:   joinEscaped(metaItems(resume), metaSeparator),
		UseTTF: th.UseTTF(),
		Page:   buildPage(th),
		Fonts:  buildFonts(th),
		Colors: colors,
		Sizes:  buildSizes(th.Sizes),
	}

	for _, kind := range th.SectionOrder {
		section, ok := buildSection(kind, resume, th)
		if ok {
			data.Sections = append(data.Sections, section)
		}
	}

	return data, nil
}

func metaItems(r *types.Resume) []string {
	items := []string{r.Location, r.Email, r.Phone}
	return append(items, r.Links...)
}

func buildSection(kind string, r *types.Resume, th *theme.Theme) (SectionData, bool) {
	section := SectionData{Kind: kind, Label: EscapeLaTeX(th.Label(kind))}

	switch kind {
	case theme.SectionHeader:
		return section, true
	case theme.SectionSummary:
		section.Text = EscapeLaTeX(strings.TrimSpace(r.Summary))
		return section, section.Text != ""
	case theme.SectionSkills:
		section.Text = joinEscaped(r.Skills, metaSeparator)
		return section, section.Text != ""
	case theme.SectionCertifications:
		section.Text = joinEscaped(r.Certifications, ", ")
		return section, section.Text != ""
	case theme.SectionEducation:
		for _, e := range r.Education {
			section.Schools = append(section.Schools, buildSchool(e))
		}
		return section, len(section.Schools) > 0
	case theme.SectionExperience:
		for _, e := range r.Experience {
			section.Jobs = append(section.Jobs, buildJob(e))
		}
		return section, len(section.Jobs) > 0
	default:
		return section, false
	}
}

func buildSchool(e types.Education) SchoolData {
	line := EscapeLaTeX(e.School)
	if grad := e.Graduation(); grad != "" {
		line += ", " + EscapeLaTeX(grad)
	}
	return SchoolData{
		Line:     line,
		Location: EscapeLaTeX(e.Location),
		Degree:   EscapeLaTeX(e.Degree),
	}
}

func buildJob(e types.Experience) JobData {
	job := JobData{
		Organization: EscapeLaTeX(e.Employer()),
		Role:         EscapeLaTeX(e.Role),
		Dates:        EscapeLaTeX(e.Dates),
		Location:     EscapeLaTeX(e.Location),
	}
	for _, b := range e.Bullets {
		if b = strings.TrimSpace(b); b != "" {
			job.Bullets = append(job.Bullets, EscapeLaTeX(b))
		}
	}
	return job
}

func buildPage(th *theme.Theme) PageData {
	paper := "letterpaper"
	if strings.EqualFold(th.PageSize, theme.PageA4) {
		paper = "a4paper"
	}
	m := th.MarginsIn
	return PageData{
		Paper:  paper,
		Left:   formatNumber(m.Left),
		Right:  formatNumber(m.Right),
		Top:    formatNumber(m.Top),
		Bottom: formatNumber(m.Bottom),
	}
}

// builtinFonts maps PDF base font families to LaTeX preambles.
var builtinFonts = []struct {
	prefix   string
	preamble string
}{
	{"helvetica", `\usepackage{helvet}\renewcommand{\familydefault}{\sfdefault}`},
	{"arial", `\usepackage{helvet}\renewcommand{\familydefault}{\sfdefault}`},
	{"times", `\usepackage{mathptmx}`},
	{"courier", `\usepackage{courier}\renewcommand{\familydefault}{\ttdefault}`},
}

func buildFonts(th *theme.Theme) FontData {
	if th.UseTTF() {
		return FontData{
			Regular: fontPath(th.Fonts.TTFRegular),
			Bold:    fontPath(th.Fonts.TTFBold),
		}
	}

	base := strings.ToLower(th.Fonts.Base)
	for _, f := range builtinFonts {
		if strings.HasPrefix(base, f.prefix) {
			return FontData{Package: f.preamble}
		}
	}
	return FontData{}
}

func fontPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.ToSlash(path)
}

func buildColors(c theme.Colors) (ColorData, error) {
	accent, err := hexColor(c.AccentHex)
	if err != nil {
		return ColorData{}, err
	}
	text, err := hexColor(c.TextHex)
	if err != nil {
		return ColorData{}, err
	}
	muted, err := hexColor(c.MutedHex)
	if err != nil {
		return ColorData{}, err
	}
	return ColorData{Accent: accent, Text: text, Muted: muted}, nil
}

// hexColor converts "#abc" or "#aabbcc" to "AABBCC" for xcolor's HTML model.
func hexColor(s string) (string, error) {
	h := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", fmt.Errorf("invalid hex colour %q", s)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", fmt.Errorf("invalid hex colour %q", s)
	}
	return h, nil
}

func buildSizes(s theme.Sizes) SizeData {
	lead := func(size float64) string { return formatNumber(size + s.LeadingAdjust) }
	return SizeData{
		H1: formatNumber(s.H1), H1Leading: lead(s.H1),
		H2: formatNumber(s.H2), H2Leading: lead(s.H2),
		Body: formatNumber(s.Body), BodyLeading: lead(s.Body),
		Meta: formatNumber(s.Meta), MetaLeading: lead(s.Meta),
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
