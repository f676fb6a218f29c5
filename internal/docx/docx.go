// Package docx reads the paragraph text and paragraph style names of a .docx file.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"

	// DefaultStyle is reported for paragraphs without an explicit or default style.
	DefaultStyle = "Normal"
)

// Paragraph is a single body paragraph with its resolved style name.
type Paragraph struct {
	Text  string
	Style string
}

// Document holds the body paragraphs of a .docx file, in document order.
// Paragraphs nested in tables are not included.
type Document struct {
	Paragraphs []Paragraph
}

// Open reads the document stored at path. unioffice is tried first; when it
// cannot read the file (it may require a license key) the archive is read
// directly.
func Open(path string) (*Document, error) {
	doc, officeErr := openOffice(path)
	if officeErr == nil {
		return doc, nil
	}

	doc, err := openArchive(path)
	if err != nil {
		return nil, errors.Join(err, officeErr)
	}
	return doc, nil
}

func openArchive(path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()

	return read(&r.Reader)
}

// readArchive reads a document from an in-memory archive.
func readArchive(ra io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX: %w", err)
	}
	return read(zr)
}

func read(zr *zip.Reader) (*Document, error) {
	fileIndex := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		fileIndex[f.Name] = f
	}

	docFile := fileIndex[documentPart]
	if docFile == nil {
		return nil, fmt.Errorf("%s not found in DOCX", documentPart)
	}

	data, err := readPart(docFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", documentPart, err)
	}

	var doc docxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}

	styles := loadStyles(fileIndex[stylesPart])

	out := &Document{Paragraphs: make([]Paragraph, 0, len(doc.Body.Paras))}
	for _, p := range doc.Body.Paras {
		out.Paragraphs = append(out.Paragraphs, Paragraph{
			Text:  p.text,
			Style: styles.name(p.styleID),
		})
	}
	return out, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// DOCX XML structures (simplified)
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	Paras []docxPara `xml:"p"`
}

// docxPara collects run text in document order, including runs nested in
// hyperlinks and smart tags, which a plain struct mapping would lose. Text
// boxes belong to their own story and are skipped.
type docxPara struct {
	styleID string
	text    string
}

func (p *docxPara) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	inText := false
	inPPr := false

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "txbxContent" {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			depth++
			switch t.Name.Local {
			case "pPr":
				inPPr = true
			case "pStyle":
				if inPPr {
					p.styleID = attrValue(t, "val")
				}
			case "t":
				inText = true
			case "tab":
				// tab stops inside paragraph properties are layout, not text
				if !inPPr {
					b.WriteByte('\t')
				}
			case "noBreakHyphen":
				b.WriteByte('-')
			case "br":
				b.WriteString(breakText(attrValue(t, "type")))
			case "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if depth == 0 {
				p.text = b.String()
				return nil
			}
			depth--
			switch t.Name.Local {
			case "pPr":
				inPPr = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}

// breakText is the text of a w:br element. Page and column breaks carry none.
func breakText(breakType string) string {
	switch breakType {
	case "page", "column":
		return ""
	default:
		return "\n"
	}
}

func attrValue(el xml.StartElement, local string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
