package theme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	th := Default()

	assert.Equal(t, PageLetter, th.PageSize)
	assert.Equal(t, Margins{Left: 0.7, Right: 0.7, Top: 0.7, Bottom: 0.7}, th.MarginsIn)
	assert.Equal(t, "Helvetica", th.Fonts.Base)
	assert.Equal(t, "Helvetica-Bold", th.Fonts.Bold)
	assert.Equal(t, "#444444", th.Colors.MutedHex)
	assert.Equal(t, 10.5, th.Sizes.Body)
	assert.Equal(t, []string{"header", "summary", "education", "skills", "experience", "certifications"}, th.SectionOrder)
	assert.NoError(t, th.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	th, err := Load(filepath.Join(t.TempDir(), "theme.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), th)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	content := `page_size: a4
margins_in:
  left: 0.5
colors:
  accent_hex: "#1F4E79"
labels:
  experience: WORK HISTORY
section_order: [header, experience, skills]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	th, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, PageA4, th.PageSize)
	assert.Equal(t, 0.5, th.MarginsIn.Left)
	assert.Equal(t, 0.7, th.MarginsIn.Right, "unset keys keep defaults")
	assert.Equal(t, "#1F4E79", th.Colors.AccentHex)
	assert.Equal(t, "#000000", th.Colors.TextHex)
	assert.Equal(t, []string{"header", "experience", "skills"}, th.SectionOrder)
	assert.Equal(t, "WORK HISTORY", th.Label(SectionExperience))
	assert.Equal(t, "EDUCATION", th.Label(SectionEducation))
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	th, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, Default(), th)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: [unclosed"), 0644))

	_, err := Load(path)

	require.Error(t, err)
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "failed to parse theme file")
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme.yaml")
	th := Default()
	th.Fonts.PreferTTF = true
	th.Sizes.H1 = 20
	th.Labels.Skills = "TOOLS"

	require.NoError(t, Save(path, th))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, th, loaded)
}

func TestSave_PreservesFieldOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Less(t, strings.Index(text, "page_size"), strings.Index(text, "margins_in"))
	assert.Less(t, strings.Index(text, "margins_in"), strings.Index(text, "fonts"))
	assert.Less(t, strings.Index(text, "sizes"), strings.Index(text, "section_order"))
}

func TestSave_RejectsInvalidTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	th := Default()
	th.Colors.AccentHex = "blue"

	err := Save(path, th)

	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Theme)
		field  string
	}{
		{"bad page size", func(th *Theme) { th.PageSize = "LEGAL" }, "PageSize"},
		{"negative margin", func(th *Theme) { th.MarginsIn.Top = -0.1 }, "Top"},
		{"zero body size", func(th *Theme) { th.Sizes.Body = 0 }, "Body"},
		{"bad colour", func(th *Theme) { th.Colors.TextHex = "#12345G" }, "TextHex"},
		{"unknown section", func(th *Theme) { th.SectionOrder = []string{"header", "hobbies"} }, "SectionOrder"},
		{"duplicate section", func(th *Theme) { th.SectionOrder = []string{"header", "header"} }, "SectionOrder"},
		{"missing base font", func(th *Theme) { th.Fonts.Base = "" }, "Base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Default()
			tt.mutate(th)

			err := th.Validate()

			require.Error(t, err)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_NormalizesPageSize(t *testing.T) {
	th := Default()
	th.PageSize = " a4 "

	require.NoError(t, th.Validate())
	assert.Equal(t, PageA4, th.PageSize)
}

func TestLabel_Defaults(t *testing.T) {
	th := Default()

	assert.Equal(t, "SUMMARY", th.Label(SectionSummary))
	assert.Equal(t, "SKILLS AND SOFTWARE PROFICIENCIES", th.Label(SectionSkills))
	assert.Equal(t, "RELEVANT EXPERIENCES", th.Label(SectionExperience))
	assert.Equal(t, "EDUCATION", th.Label(SectionEducation))
	assert.Equal(t, "CERTIFICATIONS", th.Label(SectionCertifications))
	assert.Equal(t, "", th.Label(SectionHeader))
}

func TestUseTTF(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "Inter-Regular.ttf")
	bold := filepath.Join(dir, "Inter-Bold.ttf")
	require.NoError(t, os.WriteFile(regular, []byte("ttf"), 0644))

	th := Default()
	th.Fonts.TTFRegular = regular
	th.Fonts.TTFBold = bold

	assert.False(t, th.UseTTF(), "prefer_ttf is off")

	th.Fonts.PreferTTF = true
	assert.False(t, th.UseTTF(), "bold file is missing")

	require.NoError(t, os.WriteFile(bold, []byte("ttf"), 0644))
	assert.True(t, th.UseTTF())
}
