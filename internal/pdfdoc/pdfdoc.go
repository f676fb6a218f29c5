// Package pdfdoc extracts text from PDF documents and inspects generated PDFs.
package pdfdoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText returns the plain text of every page, pages separated by a newline.
// Pages that fail to extract are skipped.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}

	return b.String(), nil
}

// CountPages returns the number of pages in a PDF.
func CountPages(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("opening PDF: %w", err)
	}
	return reader.NumPage(), nil
}
