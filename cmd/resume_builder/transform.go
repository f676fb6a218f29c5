package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform FILE",
	Short: "Parse a résumé document and render it to PDF",
	Long: `Parse a .txt, .pdf or .docx résumé and render the extracted record with the
configured theme. Fields the parser does not extract (contact details, education)
are left blank; use --json to save the record for editing and "generate" to re-render.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

var (
	transformOut     string
	transformJSON    string
	transformTexOnly bool
)

func init() {
	transformCmd.Flags().StringVarP(&transformOut, "out", "o", "", "Output file path")
	transformCmd.Flags().StringVar(&transformJSON, "json", "", "Also write the parsed record to this JSON file")
	transformCmd.Flags().BoolVar(&transformTexOnly, "tex-only", false, "Write the LaTeX source instead of compiling a PDF")

	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	parser := &parsing.Parser{TempDir: cfg.TempDir, Logger: logger}
	parsed, err := parser.ParseFile(filepath.Base(path), data)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintParsedResume(path, parsed)
	}

	if transformJSON != "" {
		encoded, err := encodeParsed(parsed)
		if err != nil {
			return err
		}
		if err := writeFile(transformJSON, encoded); err != nil {
			return err
		}
	}

	th, err := theme.Load(cfg.Theme)
	if err != nil {
		return err
	}
	return renderResume(cmd, parsed.ToResume(), th, transformOut, transformTexOnly)
}
