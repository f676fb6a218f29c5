package parsing

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/docx"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts raw bytes to a string without ever failing.
// A UTF-8 or UTF-16 byte order mark selects the encoding and is removed;
// otherwise the input is treated as UTF-8. Invalid sequences are dropped.
func DecodeText(data []byte) string {
	decoder := unicode.BOMOverride(encoding.Nop.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		decoded = data
	}
	return strings.ToValidUTF8(string(decoded), "")
}

// SplitLines splits text on every line boundary, trims each line and
// drops the ones left empty.
func SplitLines(text string) []string {
	fields := strings.FieldsFunc(text, isLineBreak)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if line := strings.TrimSpace(f); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// NormalizeParagraphs trims paragraph text and drops empty paragraphs,
// keeping each paragraph's style name.
func NormalizeParagraphs(paras []docx.Paragraph) []docx.Paragraph {
	out := make([]docx.Paragraph, 0, len(paras))
	for _, p := range paras {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		out = append(out, docx.Paragraph{Text: text, Style: p.Style})
	}
	return out
}
