package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/theme"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate RESUME",
	Short: "Render a YAML or JSON résumé to PDF",
	Long: `Validate a résumé record (.yaml, .yml or .json) against the resume schema and
render it with the configured theme. The PDF is written to <output_dir>/<Name>_resume.pdf
unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateOut     string
	generateTexOnly bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output file path")
	generateCmd.Flags().BoolVar(&generateTexOnly, "tex-only", false, "Write the LaTeX source instead of compiling a PDF")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	resume, err := resumefile.Load(args[0])
	if err != nil {
		return err
	}
	th, err := theme.Load(cfg.Theme)
	if err != nil {
		return err
	}
	return renderResume(cmd, resume, th, generateOut, generateTexOnly)
}

// renderResume writes resume as LaTeX (texOnly) or PDF to out, defaulting
// to the configured output directory.
func renderResume(cmd *cobra.Command, resume *types.Resume, th *theme.Theme, out string, texOnly bool) error {
	if out == "" {
		out = filepath.Join(cfg.OutputDir, resume.PDFFileName())
		if texOnly {
			out = strings.TrimSuffix(out, ".pdf") + ".tex"
		}
	}

	if texOnly {
		tex, err := rendering.RenderLaTeX(resume, th, cfg.Template)
		if err != nil {
			return err
		}
		if err := writeFile(out, []byte(tex)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	}

	output, err := compilePDF(cmd.Context(), resume, th)
	if err != nil {
		return err
	}
	if err := writeFile(out, output.PDF); err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintRender(out, output.Pages, len(output.PDF))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d page(s))\n", out, output.Pages)
	return nil
}

func compilePDF(ctx context.Context, resume *types.Resume, th *theme.Theme) (*rendering.Output, error) {
	opts := rendering.RenderOptions{
		TemplatePath: cfg.Template,
		Compile: rendering.CompileOptions{
			TempDir: cfg.TempDir,
			Timeout: cfg.Timeout(),
			Logger:  logger,
		},
	}
	output, err := rendering.RenderPDF(ctx, resume, th, opts)
	if err != nil {
		if output == nil || len(output.PDF) == 0 {
			return nil, err
		}
		logger.Warn("LaTeX reported errors but produced a PDF", "error", err)
	}
	return output, nil
}
