package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Extract a structured record from résumé documents",
	Long: `Parse one or more .txt, .pdf or .docx résumés into JSON records with name,
summary, skills and experience. Files are parsed concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseOut         string
	parseOutDir      string
	parseConcurrency int
)

func init() {
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write the JSON record to this file (single input only)")
	parseCmd.Flags().StringVar(&parseOutDir, "out-dir", "", "Write one <name>.json per input into this directory")
	parseCmd.Flags().IntVarP(&parseConcurrency, "concurrency", "c", 0, "Files parsed in parallel (default from config)")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseOut != "" && parseOutDir != "" {
		return fmt.Errorf("--out and --out-dir cannot be used together")
	}
	if parseOut != "" && len(args) > 1 {
		return fmt.Errorf("--out accepts a single input; use --out-dir for %d files", len(args))
	}
	concurrency := parseConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	parser := &parsing.Parser{TempDir: cfg.TempDir, Logger: logger}
	results, err := parseFiles(cmd.Context(), parser, args, concurrency)
	if err != nil {
		return err
	}

	for i, path := range args {
		if cfg.Verbose {
			printer.PrintParsedResume(path, results[i])
		}

		data, err := encodeParsed(results[i])
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		switch {
		case parseOutDir != "":
			out := filepath.Join(parseOutDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".json")
			if err := writeFile(out, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		case parseOut != "":
			if err := writeFile(parseOut, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", parseOut)
		default:
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseFiles parses paths with at most concurrency files in flight. Results
// keep the order of paths; the first failure cancels the rest.
func parseFiles(ctx context.Context, parser *parsing.Parser, paths []string, concurrency int) ([]*types.ParsedResume, error) {
	results := make([]*types.ParsedResume, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			parsed, err := parser.ParseFile(filepath.Base(path), data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug("parsed document", "path", path, "jobs", len(parsed.Experience), "skills", len(parsed.Skills))
			results[i] = parsed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// encodeParsed marshals a parse result and checks it against the parsed
// résumé schema.
func encodeParsed(parsed *types.ParsedResume) ([]byte, error) {
	data, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed resume: %w", err)
	}
	if err := schemas.ValidateParsedResume(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
