package parsing

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/docx"
	"github.com/stretchr/testify/assert"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"plain UTF-8", []byte("Jane Doe\nEngineer"), "Jane Doe\nEngineer"},
		{"multibyte UTF-8", []byte("Zoë • Café"), "Zoë • Café"},
		{"invalid bytes are dropped", []byte("Ja\xffne\xfe Doe"), "Jane Doe"},
		{"truncated sequence is dropped", []byte("Doe\xe2\x80"), "Doe"},
		{"UTF-8 BOM is removed", []byte("\xef\xbb\xbfJane"), "Jane"},
		{"UTF-16LE with BOM", []byte("\xff\xfeH\x00i\x00"), "Hi"},
		{"UTF-16BE with BOM", []byte("\xfe\xff\x00H\x00i"), "Hi"},
		{"empty input", []byte{}, ""},
		{"nil input", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeText(tt.input))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"unix newlines", "a\nb\nc", []string{"a", "b", "c"}},
		{"windows newlines", "a\r\nb\r\n", []string{"a", "b"}},
		{"old mac newlines", "a\rb", []string{"a", "b"}},
		{"unicode separators", "a\u2028b\u2029c\u0085d", []string{"a", "b", "c", "d"}},
		{"form feed and vertical tab", "a\fb\vc", []string{"a", "b", "c"}},
		{"lines are trimmed", "  Jane Doe \t\n\tEngineer  ", []string{"Jane Doe", "Engineer"}},
		{"blank lines dropped", "a\n\n   \n\t\nb", []string{"a", "b"}},
		{"only whitespace", " \n \r\n\t", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.input))
		})
	}
}

func TestNormalizeParagraphs(t *testing.T) {
	paras := []docx.Paragraph{
		{Text: "  Jane Doe ", Style: "Title"},
		{Text: "", Style: "Normal"},
		{Text: " \t ", Style: "Normal"},
		{Text: "Experience", Style: "Heading 1"},
	}

	got := NormalizeParagraphs(paras)

	assert.Equal(t, []docx.Paragraph{
		{Text: "Jane Doe", Style: "Title"},
		{Text: "Experience", Style: "Heading 1"},
	}, got)
}
