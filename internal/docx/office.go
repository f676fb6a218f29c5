package docx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

var errNoParagraphs = errors.New("unioffice found no body paragraphs")

// openOffice reads path with unioffice. Paragraphs inside tables are
// excluded, matching the archive reader.
func openOffice(path string) (out *Document, err error) {
	// unioffice panics on some malformed packages
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("unioffice: %v", r)
		}
	}()

	doc, err := document.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unioffice: %w", err)
	}
	defer doc.Close()

	// a package unioffice cannot resolve still opens, with an empty body
	if doc.X() == nil || doc.X().Body == nil || len(doc.Paragraphs()) == 0 {
		return nil, errNoParagraphs
	}

	inTable := make(map[*wml.CT_P]bool)
	for _, tbl := range doc.Tables() {
		for _, row := range tbl.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					inTable[p.X()] = true
				}
			}
		}
	}

	styles := officeStyles(doc)
	out = &Document{Paragraphs: []Paragraph{}}
	for _, p := range doc.Paragraphs() {
		if inTable[p.X()] {
			continue
		}
		var b strings.Builder
		for _, run := range p.Runs() {
			writeRunText(&b, run.X())
		}
		out.Paragraphs = append(out.Paragraphs, Paragraph{
			Text:  b.String(),
			Style: styles.name(p.Style()),
		})
	}
	return out, nil
}

// officeStyles builds the paragraph style table from the document's styles part.
func officeStyles(doc *document.Document) styleTable {
	table := styleTable{names: map[string]string{}, defaultStyle: DefaultStyle}
	for _, s := range doc.Styles.Styles() {
		if s.Type() != wml.ST_StyleTypeParagraph {
			continue
		}
		name := displayName(s.Name())
		if name == "" {
			name = s.StyleID()
		}
		table.names[s.StyleID()] = name
	}
	if name, ok := table.names[DefaultStyle]; ok {
		table.defaultStyle = name
	}
	return table
}

func writeRunText(b *strings.Builder, r *wml.CT_R) {
	if r == nil {
		return
	}
	for _, ic := range r.EG_RunInnerContent {
		switch {
		case ic.T != nil:
			b.WriteString(ic.T.Content)
		case ic.Tab != nil:
			b.WriteByte('\t')
		case ic.NoBreakHyphen != nil:
			b.WriteByte('-')
		case ic.Br != nil:
			if ic.Br.TypeAttr != wml.ST_BrTypePage && ic.Br.TypeAttr != wml.ST_BrTypeColumn {
				b.WriteByte('\n')
			}
		case ic.Cr != nil:
			b.WriteByte('\n')
		}
	}
}
