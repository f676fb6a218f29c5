package rendering

import "strings"

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
	"\r\n", " ",
	"\n", " ",
	"\t", " ",
)

// EscapeLaTeX makes text safe to place in a LaTeX document body.
// Line breaks and tabs collapse to spaces.
func EscapeLaTeX(text string) string {
	return latexReplacer.Replace(text)
}

// joinEscaped escapes each non-empty item and joins them with sep, which
// is inserted as-is.
func joinEscaped(items []string, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			parts = append(parts, EscapeLaTeX(item))
		}
	}
	return strings.Join(parts, sep)
}
