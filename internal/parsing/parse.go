// Package parsing extracts structured résumé records from plain text, .docx
// and .pdf documents using line-oriented heuristics.
package parsing

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/docx"
	"github.com/jonathan/resume-builder/internal/pdfdoc"
	"github.com/jonathan/resume-builder/internal/types"
)

// Parser parses uploaded documents. The zero value is ready to use.
type Parser struct {
	// TempDir holds the scratch copy of .docx uploads. Empty means os.TempDir.
	TempDir string
	Logger  *slog.Logger
}

var defaultParser = &Parser{}

// ParseText parses plain text with the default parser.
func ParseText(data []byte) *types.ParsedResume {
	return defaultParser.ParseText(data)
}

// ParseDocx parses a .docx document with the default parser.
func ParseDocx(data []byte) (*types.ParsedResume, error) {
	return defaultParser.ParseDocx(data)
}

// ParseFile parses a document with the default parser, choosing the format by extension.
func ParseFile(name string, data []byte) (*types.ParsedResume, error) {
	return defaultParser.ParseFile(name, data)
}

// ParseFile chooses the entry point by file extension: .docx is read as a
// rich document, .pdf has its text extracted first, and everything else is
// treated as plain text.
func (p *Parser) ParseFile(name string, data []byte) (*types.ParsedResume, error) {
	ext := strings.ToLower(filepath.Ext(name))
	p.logger().Debug("parsing document", "name", name, "format", ext, "bytes", len(data))

	switch ext {
	case ".docx":
		return p.ParseDocx(data)
	case ".pdf":
		return p.ParsePDF(data)
	default:
		return p.ParseText(data), nil
	}
}

// ParseText parses plain text. It never fails; undecodable bytes are dropped.
func (p *Parser) ParseText(data []byte) *types.ParsedResume {
	return parseLines(SplitLines(DecodeText(data)))
}

// ParsePDF extracts the text layer of a PDF and parses it as plain text.
func (p *Parser) ParsePDF(data []byte) (*types.ParsedResume, error) {
	text, err := pdfdoc.ExtractText(data)
	if err != nil {
		return nil, &DocumentError{Message: "failed to read PDF", Cause: err}
	}
	return parseLines(SplitLines(text)), nil
}

// ParseDocx parses a .docx document. The bytes are written to a temporary
// file that is removed before ParseDocx returns, including on error.
func (p *Parser) ParseDocx(data []byte) (*types.ParsedResume, error) {
	var doc *docx.Document
	err := withTempFile(p.TempDir, "upload-*.docx", data, func(path string) error {
		var openErr error
		doc, openErr = docx.Open(path)
		return openErr
	})
	if err != nil {
		return nil, &DocumentError{Message: "failed to read DOCX", Cause: err}
	}

	paras := NormalizeParagraphs(doc.Paragraphs)
	result := types.NewParsedResume()
	if len(paras) == 0 {
		return result, nil
	}
	result.Name = paras[0].Text

	buckets := Segment(paras[1:], func(p docx.Paragraph) string { return p.Text })
	decodeCommon(result, texts(buckets[SectionSummary]), texts(buckets[SectionSkills]))
	if exp := buckets[SectionExperience]; len(exp) > 0 {
		result.Experience = decodeDocxExperience(exp)
	}
	return result, nil
}

func parseLines(lines []string) *types.ParsedResume {
	result := types.NewParsedResume()
	if len(lines) == 0 {
		return result
	}
	result.Name = lines[0]

	buckets := SegmentLines(lines[1:])
	decodeCommon(result, buckets[SectionSummary], buckets[SectionSkills])
	if exp := buckets[SectionExperience]; len(exp) > 0 {
		result.Experience = decodeTextExperience(exp)
	}
	return result
}

// decodeCommon fills the summary and skills fields shared by both entry
// points. Education is never decoded.
func decodeCommon(result *types.ParsedResume, summary, skills []string) {
	if len(summary) > 0 {
		result.Summary = decodeSummary(summary)
	}
	if len(skills) > 0 {
		result.Skills = decodeSkills(skills)
	}
}

func texts(paras []docx.Paragraph) []string {
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text
	}
	return out
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
