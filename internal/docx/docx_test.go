package docx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/docx/docxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadArchive_ParagraphsAndStyles(t *testing.T) {
	data := docxtest.Build(
		docxtest.Para{Text: "Jane Doe", StyleID: "Title"},
		docxtest.Para{Text: "Experience", StyleID: "Heading1"},
		docxtest.Para{Text: "Led onboarding", StyleID: "ListBullet"},
		docxtest.Para{Text: "Plain paragraph"},
	)

	doc, err := readArchive(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 4)

	// "Title" is not in the style table, so the raw id is reported
	assert.Equal(t, Paragraph{Text: "Jane Doe", Style: "Title"}, doc.Paragraphs[0])
	assert.Equal(t, Paragraph{Text: "Experience", Style: "Heading 1"}, doc.Paragraphs[1])
	assert.Equal(t, Paragraph{Text: "Led onboarding", Style: "List Bullet"}, doc.Paragraphs[2])
	assert.Equal(t, Paragraph{Text: "Plain paragraph", Style: "Normal"}, doc.Paragraphs[3])
}

func TestReadArchive_RunsHyperlinksTabsAndBreaks(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
  <w:p>
    <w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>
    <w:r><w:t>Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r>
    <w:r><w:tab/><w:t>Acme</w:t></w:r>
    <w:hyperlink><w:r><w:t> site</w:t></w:r></w:hyperlink>
    <w:r><w:br/><w:t>next</w:t></w:r>
  </w:p>
  <w:tbl><w:tr><w:tc><w:p><w:r><w:t>in a table</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  <w:p/>
</w:body>
</w:document>`

	data := docxtest.BuildParts(map[string]string{"word/document.xml": documentXML})

	doc, err := readArchive(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 2, "table paragraphs are not body paragraphs")

	assert.Equal(t, "Senior Engineer\tAcme site\nnext", doc.Paragraphs[0].Text)
	assert.Equal(t, DefaultStyle, doc.Paragraphs[0].Style, "no styles part falls back to Normal")
	assert.Equal(t, "", doc.Paragraphs[1].Text)
}

func TestReadArchive_MissingDocumentPart(t *testing.T) {
	data := docxtest.BuildParts(map[string]string{"word/styles.xml": "<w:styles/>"})

	_, err := readArchive(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml not found")
}

func TestReadArchive_NotAZip(t *testing.T) {
	data := []byte("this is plain text, not a docx")

	_, err := readArchive(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening DOCX")
}

func TestReadArchive_MalformedXML(t *testing.T) {
	data := docxtest.BuildParts(map[string]string{"word/document.xml": "<w:document><w:body><w:p>"})

	_, err := readArchive(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing word/document.xml")
}

func TestReadArchive_BreaksHyphensAndTextBoxes(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
  <w:p><w:r><w:t>Engineer </w:t><w:noBreakHyphen/><w:t> Acme</w:t></w:r></w:p>
  <w:p><w:r><w:t>before</w:t><w:br w:type="page"/><w:t>after</w:t></w:r></w:p>
  <w:p><w:r><w:t>one</w:t><w:br w:type="column"/><w:t>two</w:t><w:br w:type="textWrapping"/><w:t>three</w:t></w:r></w:p>
  <w:p>
    <w:r><w:t>Outer</w:t></w:r>
    <w:r><w:pict><v:shape xmlns:v="urn:schemas-microsoft-com:vml"><v:textbox>
      <w:txbxContent><w:p><w:r><w:t>boxed</w:t></w:r></w:p></w:txbxContent>
    </v:textbox></v:shape></w:pict></w:r>
    <w:r><w:t> text</w:t></w:r>
  </w:p>
</w:body>
</w:document>`

	data := docxtest.BuildParts(map[string]string{"word/document.xml": documentXML})

	doc, err := readArchive(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 4, "text box paragraphs are not body paragraphs")

	assert.Equal(t, "Engineer - Acme", doc.Paragraphs[0].Text)
	assert.Equal(t, "beforeafter", doc.Paragraphs[1].Text)
	assert.Equal(t, "onetwo\nthree", doc.Paragraphs[2].Text)
	assert.Equal(t, "Outer text", doc.Paragraphs[3].Text)
}

func TestBreakText(t *testing.T) {
	assert.Equal(t, "\n", breakText(""))
	assert.Equal(t, "\n", breakText("textWrapping"))
	assert.Equal(t, "", breakText("page"))
	assert.Equal(t, "", breakText("column"))
}

func TestOpen_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, docxtest.Lines("Jane Doe", "Summary line"), 0644))

	doc, err := Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, "Jane Doe", doc.Paragraphs[0].Text)
}

func TestOpen_StylesAndBreaks(t *testing.T) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
  <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Experience</w:t></w:r></w:p>
  <w:p><w:r><w:t>Engineer </w:t><w:noBreakHyphen/><w:t> Acme</w:t><w:br w:type="page"/></w:r></w:p>
  <w:tbl><w:tr><w:tc><w:p><w:r><w:t>in a table</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  <w:p><w:r><w:t>Plain</w:t></w:r></w:p>
  <w:sectPr/>
</w:body></w:document>`
	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, docxtest.BuildParts(docxtest.Package(documentXML)), 0644))

	doc, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, []Paragraph{
		{Text: "Experience", Style: "Heading 1"},
		{Text: "Engineer - Acme", Style: "Normal"},
		{Text: "Plain", Style: "Normal"},
	}, doc.Paragraphs)
}

func TestOpen_FallsBackToArchive(t *testing.T) {
	// no content types or relationships, so only the archive reader finds the body
	path := filepath.Join(t.TempDir(), "bare.docx")
	data := docxtest.BuildParts(map[string]string{"word/document.xml": docxtest.DocumentXML(docxtest.Para{Text: "Jane Doe"})})
	require.NoError(t, os.WriteFile(path, data, 0644))

	doc, err := Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, "Jane Doe", doc.Paragraphs[0].Text)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Heading 1", displayName("heading 1"))
	assert.Equal(t, "Normal", displayName("normal"))
	assert.Equal(t, "My Custom Style", displayName("My Custom Style"))
}
