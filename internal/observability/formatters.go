// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintParsedResume outputs a human-readable summary of a parse result.
func (p *Printer) PrintParsedResume(source string, r *types.ParsedResume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	if source != "" {
		fmt.Fprintf(&sb, "Source:   %s\n", source)
	}
	fmt.Fprintf(&sb, "Name:     %s\n", valueOr(r.Name, "(none)"))
	fmt.Fprintf(&sb, "Summary:  %s\n", valueOr(r.Summary, "(none)"))

	if len(r.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills:   %d\n", len(r.Skills))
		sb.WriteString("  " + strings.Join(r.Skills[:min(len(r.Skills), maxItemsToShow)], ", "))
		if len(r.Skills) > maxItemsToShow {
			fmt.Fprintf(&sb, " ... and %d more", len(r.Skills)-maxItemsToShow)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nExperience: %d entries\n", len(r.Experience))
	count := min(len(r.Experience), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := r.Experience[i]
		sb.WriteString(fmt.Sprintf("  • %s", valueOr(job.Role, "(no role)")))
		if job.Company != "" {
			sb.WriteString(" @ " + job.Company)
		}
		fmt.Fprintf(&sb, " (%d bullets)\n", len(job.Bullets))
	}
	if len(r.Experience) > maxItemsToShow {
		fmt.Fprintf(&sb, "  ... and %d more\n", len(r.Experience)-maxItemsToShow)
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTheme outputs the effective theme settings.
func (p *Printer) PrintTheme(path string, th *theme.Theme) {
	if th == nil {
		return
	}

	var sb strings.Builder
	if path != "" {
		fmt.Fprintf(&sb, "File:     %s\n", path)
	}
	m := th.MarginsIn
	fmt.Fprintf(&sb, "Page:     %s (margins L%.2g R%.2g T%.2g B%.2g in)\n", th.PageSize, m.Left, m.Right, m.Top, m.Bottom)
	fonts := th.Fonts.Base + " / " + th.Fonts.Bold
	if th.UseTTF() {
		fonts = th.Fonts.TTFRegular + " / " + th.Fonts.TTFBold + " (TTF)"
	}
	fmt.Fprintf(&sb, "Fonts:    %s\n", fonts)
	fmt.Fprintf(&sb, "Colors:   accent %s, text %s, muted %s\n", th.Colors.AccentHex, th.Colors.TextHex, th.Colors.MutedHex)
	s := th.Sizes
	fmt.Fprintf(&sb, "Sizes:    h1 %g, h2 %g, body %g, meta %g (+%g)\n", s.H1, s.H2, s.Body, s.Meta, s.LeadingAdjust)
	fmt.Fprintf(&sb, "Sections: %s", strings.Join(th.SectionOrder, " → "))

	p.printBox("THEME", sb.String())
}

// PrintRender outputs where a PDF was written and its size.
func (p *Printer) PrintRender(path string, pages, size int) {
	content := fmt.Sprintf("Output:   %s\nPages:    %d\nSize:     %d bytes", path, pages, size)
	if pages > 1 {
		content += fmt.Sprintf("\n⚠️  Document spans %d pages", pages)
	}
	p.printBox("RENDERED PDF", content)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
