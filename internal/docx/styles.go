package docx

import (
	"archive/zip"
	"encoding/xml"
	"strings"
)

type docxStyles struct {
	XMLName xml.Name    `xml:"styles"`
	Styles  []docxStyle `xml:"style"`
}

type docxStyle struct {
	Type    string        `xml:"type,attr"`
	StyleID string        `xml:"styleId,attr"`
	Default string        `xml:"default,attr"`
	Name    docxStyleName `xml:"name"`
}

type docxStyleName struct {
	Val string `xml:"val,attr"`
}

// styleTable maps paragraph style ids to display names.
type styleTable struct {
	names        map[string]string
	defaultStyle string
}

// loadStyles reads word/styles.xml. A missing or unreadable part yields an
// empty table, so every paragraph resolves to its raw id or DefaultStyle.
func loadStyles(f *zip.File) styleTable {
	table := styleTable{names: map[string]string{}, defaultStyle: DefaultStyle}
	if f == nil {
		return table
	}

	data, err := readPart(f)
	if err != nil {
		return table
	}

	var styles docxStyles
	if err := xml.Unmarshal(data, &styles); err != nil {
		return table
	}

	for _, s := range styles.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		name := displayName(s.Name.Val)
		if name == "" {
			name = s.StyleID
		}
		table.names[s.StyleID] = name
		if s.Default == "1" || s.Default == "true" {
			table.defaultStyle = name
		}
	}
	return table
}

func (t styleTable) name(styleID string) string {
	if styleID == "" {
		return t.defaultStyle
	}
	if name, ok := t.names[styleID]; ok {
		return name
	}
	return styleID
}

// Word stores built-in style names in lower case ("heading 1") but shows
// them capitalised ("Heading 1").
var builtinPrefixes = []string{"normal", "heading", "title", "subtitle", "list", "caption", "quote", "header", "footer"}

func displayName(name string) string {
	for _, prefix := range builtinPrefixes {
		if strings.HasPrefix(name, prefix) {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return name
}
