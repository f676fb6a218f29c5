package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintParsedResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintParsedResume("resume.docx", &types.ParsedResume{
		Name:    "Jane Doe",
		Summary: "Backend engineer",
		Skills:  []string{"Go", "SQL", "Kafka", "gRPC", "Docker", "Terraform", "Vault"},
		Experience: []types.JobRecord{
			{Role: "Senior Engineer", Company: "Acme Corp", Bullets: []string{"Led onboarding"}},
			{Bullets: []string{"Freelance"}},
		},
		Education: []types.EducationRecord{},
	})

	output := buf.String()
	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Source:   resume.docx")
	assert.Contains(t, output, "Name:     Jane Doe")
	assert.Contains(t, output, "Skills:   7")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "• Senior Engineer @ Acme Corp (1 bullets)")
	assert.Contains(t, output, "• (no role) (1 bullets)")
}

func TestPrintParsedResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintParsedResume("x", nil)
	assert.Empty(t, buf.String())
}

func TestPrintParsedResume_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintParsedResume("", types.NewParsedResume())

	output := buf.String()
	assert.Contains(t, output, "Name:     (none)")
	assert.Contains(t, output, "Experience: 0 entries")
	assert.NotContains(t, output, "Source:")
}

func TestPrintTheme(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTheme("theme.yaml", theme.Default())

	output := buf.String()
	assert.Contains(t, output, "THEME")
	assert.Contains(t, output, "File:     theme.yaml")
	assert.Contains(t, output, "Page:     LETTER")
	assert.Contains(t, output, "Helvetica / Helvetica-Bold")
	assert.Contains(t, output, "header → summary")
}

func TestPrintRender(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRender("output/Jane_Doe_resume.pdf", 2, 1234)

	output := buf.String()
	assert.Contains(t, output, "output/Jane_Doe_resume.pdf")
	assert.Contains(t, output, "Pages:    2")
	assert.Contains(t, output, "spans 2 pages")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
